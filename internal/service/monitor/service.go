package monitor

import (
	"context"
	"sync"
	"time"

	"receiptprinter/internal/domain/ports"
	"receiptprinter/pkg/escpos"
)

// StatusSource - то, что умеет отвечать на запрос статуса (escpos.Printer).
type StatusSource interface {
	Status(ctx context.Context) (*escpos.Status, error)
}

// Config содержит конфигурацию опроса
type Config struct {
	PollInterval time.Duration // Интервал опроса
}

// Service опрашивает принтер и сообщает об изменениях состояния
// (бумага, крышка, online).
type Service struct {
	source   StatusSource
	config   Config
	log      ports.Logger
	mutex    sync.Mutex
	status   *escpos.Status
	onChange func(escpos.Status)
}

// NewService создает новый экземпляр сервиса мониторинга
func NewService(source StatusSource, cfg Config, log ports.Logger) *Service {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	return &Service{source: source, config: cfg, log: log}
}

// SetUpdateCallback устанавливает callback, вызываемый при смене состояния.
// Первый успешный опрос тоже считается сменой.
func (s *Service) SetUpdateCallback(fn func(escpos.Status)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.onChange = fn
}

// CurrentStatus возвращает последнее известное состояние, nil до первого опроса.
func (s *Service) CurrentStatus() *escpos.Status {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.status == nil {
		return nil
	}
	st := *s.status
	return &st
}

// Run опрашивает принтер до отмены ctx. Ошибки связи пишутся в лог
// на уровне Warn и опрос продолжается.
func (s *Service) Run(ctx context.Context) error {
	s.log.Info("status monitor started, interval %s", s.config.PollInterval)
	defer s.log.Info("status monitor stopped")

	s.poll(ctx)
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

func (s *Service) poll(ctx context.Context) {
	st, err := s.source.Status(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Warn("status poll failed: %v", err)
		}
		return
	}

	s.mutex.Lock()
	changed := s.status == nil || !sameState(*s.status, *st)
	s.status = st
	callback := s.onChange
	s.mutex.Unlock()

	if !changed {
		return
	}
	if st.Paper != escpos.PaperOK || st.CoverOpen || !st.Online {
		s.log.Warn("printer state: online=%t cover_open=%t paper=%s", st.Online, st.CoverOpen, st.Paper)
	} else {
		s.log.Info("printer ready")
	}
	if callback != nil {
		callback(*st)
	}
}

func sameState(a, b escpos.Status) bool {
	return a.Online == b.Online && a.CoverOpen == b.CoverOpen && a.Paper == b.Paper
}
