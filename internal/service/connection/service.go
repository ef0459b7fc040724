package connection

import (
	"fmt"
	"sort"

	"go.bug.st/serial/enumerator"

	"receiptprinter/internal/domain/ports"
	"receiptprinter/pkg/escpos"
)

// PortInfo описывает последовательный порт системы.
type PortInfo struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// Service отвечает за поиск портов и открытие сессии с принтером.
type Service struct {
	log       ports.Logger
	listPorts func() ([]*enumerator.PortDetails, error)
	newDriver func(escpos.Config) (escpos.Printer, error)
}

// NewService создает новый экземпляр Service.
func NewService(log ports.Logger) *Service {
	return &Service{
		log:       log,
		listPorts: enumerator.GetDetailedPortsList,
		newDriver: escpos.New,
	}
}

// SystemPorts возвращает список доступных в системе последовательных портов.
func (s *Service) SystemPorts() ([]PortInfo, error) {
	details, err := s.listPorts()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка портов: %w", err)
	}
	out := make([]PortInfo, 0, len(details))
	for _, d := range details {
		out = append(out, PortInfo{
			Name:         d.Name,
			IsUSB:        d.IsUSB,
			VID:          d.VID,
			PID:          d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Open создает драйвер и открывает сессию. Закрывает сессию вызывающий код.
func (s *Service) Open(cfg escpos.Config) (escpos.Printer, error) {
	p, err := s.newDriver(cfg)
	if err != nil {
		return nil, err
	}
	if err := p.Open(); err != nil {
		return nil, err
	}
	s.log.Info("printer connected: %s", describe(cfg))
	return p, nil
}

func describe(cfg escpos.Config) string {
	switch cfg.Connection {
	case escpos.ConnTCP:
		return "tcp " + cfg.Address
	case escpos.ConnFile:
		return "file " + cfg.OutputPath
	}
	return fmt.Sprintf("serial %s @ %d", cfg.Device, cfg.BaudRate)
}
