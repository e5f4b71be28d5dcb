package domain

import (
	"context"
	"log/slog"
)

type loggingNetworkService struct {
	logger *slog.Logger
	next   NetworkService
}

func NewLoggingNetworkService(logger *slog.Logger, next NetworkService) NetworkService {
	if logger == nil || next == nil {
		return next
	}

	return &loggingNetworkService{
		logger: logger,
		next:   next,
	}
}

func (s *loggingNetworkService) ListSubnets(ctx context.Context) ([]Subnet, error) {
	subnets, err := s.next.ListSubnets(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list subnets failed", "err", err.Error())
	}
	return subnets, err
}

func (s *loggingNetworkService) CreateSubnet(ctx context.Context, input CreateSubnetInput) (Subnet, error) {
	subnet, err := s.next.CreateSubnet(ctx, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "create subnet failed", "name", input.Name, "cidr", input.CIDR, "err", err.Error())
		return Subnet{}, err
	}

	s.logger.InfoContext(ctx, "subnet created", "id", subnet.ID, "name", subnet.Name, "cidr", subnet.CIDR)
	return subnet, nil
}

func (s *loggingNetworkService) GetSubnet(ctx context.Context, id int64) (Subnet, error) {
	subnet, err := s.next.GetSubnet(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "get subnet failed", "id", id, "err", err.Error())
	}
	return subnet, err
}

func (s *loggingNetworkService) UpdateSubnet(ctx context.Context, id int64, input UpdateSubnetInput) (Subnet, error) {
	subnet, err := s.next.UpdateSubnet(ctx, id, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "update subnet failed", "id", id, "err", err.Error())
		return Subnet{}, err
	}

	s.logger.InfoContext(ctx, "subnet updated", "id", subnet.ID, "name", subnet.Name)
	return subnet, nil
}

func (s *loggingNetworkService) DeleteSubnet(ctx context.Context, id int64) error {
	err := s.next.DeleteSubnet(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "delete subnet failed", "id", id, "err", err.Error())
		return err
	}

	s.logger.InfoContext(ctx, "subnet deleted", "id", id)
	return nil
}

func (s *loggingNetworkService) ListIPs(ctx context.Context, subnetID int64) ([]IPRecord, error) {
	ips, err := s.next.ListIPs(ctx, subnetID)
	if err != nil {
		s.logger.ErrorContext(ctx, "list ips failed", "subnet_id", subnetID, "err", err.Error())
	}
	return ips, err
}

func (s *loggingNetworkService) CreateIP(ctx context.Context, subnetID int64, input CreateIPInput) (IPRecord, error) {
	ip, err := s.next.CreateIP(ctx, subnetID, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "create ip failed", "subnet_id", subnetID, "ip", input.IPAddress, "err", err.Error())
		return IPRecord{}, err
	}

	s.logger.DebugContext(ctx, "ip created", "subnet_id", ip.SubnetID, "ip", ip.IPAddress, "id", string(ip.ID))
	return ip, nil
}

func (s *loggingNetworkService) UpdateIP(ctx context.Context, id IPRecordID, input UpdateIPInput) (IPRecord, error) {
	ip, err := s.next.UpdateIP(ctx, id, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "update ip failed", "ip_id", string(id), "err", err.Error())
	}
	return ip, err
}

func (s *loggingNetworkService) DeleteIP(ctx context.Context, id IPRecordID) error {
	err := s.next.DeleteIP(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "delete ip failed", "ip_id", string(id), "err", err.Error())
		return err
	}

	s.logger.DebugContext(ctx, "ip deleted", "ip_id", string(id))
	return nil
}

func (s *loggingNetworkService) ExportIPs(ctx context.Context) ([]IPRecord, error) {
	ips, err := s.next.ExportIPs(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "export ips failed", "err", err.Error())
	}
	return ips, err
}

func (s *loggingNetworkService) ImportIPs(ctx context.Context, rows []ImportRow) (ImportReport, error) {
	report, err := s.next.ImportIPs(ctx, rows)
	if err != nil {
		s.logger.ErrorContext(ctx, "import ips failed", "rows", len(rows), "err", err.Error())
		return ImportReport{}, err
	}

	s.logger.InfoContext(ctx, "import completed", "rows", len(rows), "created", report.SuccessCount, "rejected", len(report.Errors))
	return report, nil
}
