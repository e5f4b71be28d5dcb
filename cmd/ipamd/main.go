package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/mfreund/ipam-console/internal/app"

	_ "github.com/mfreund/ipam-console/docs"
)

//	@title			IPAM Console API
//	@version		1.0
//	@description	Subnet and IP inventory server for the ipamctl console.

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:4040
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := app.LoadConfig()

	if err := app.Run(ctx, cfg); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
