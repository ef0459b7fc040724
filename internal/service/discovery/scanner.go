package discovery

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/net/proxy"

	"receiptprinter/internal/domain/ports"
)

// RawPrintPort - стандартный порт сетевых ESC/POS принтеров (JetDirect).
const RawPrintPort = 9100

const (
	defaultProbeTimeout = 300 * time.Millisecond
	defaultConcurrency  = 100
	minPrefixLen        = 24 // сети крупнее /24 не сканируются
)

// Scanner ищет в локальных подсетях хосты с открытым портом печати.
type Scanner struct {
	log         ports.Logger
	port        int
	timeout     time.Duration
	concurrency int

	dial  func(ctx context.Context, network, addr string) (net.Conn, error)
	addrs func() ([]net.Addr, error)
}

// NewScanner создает сканер с портом 9100.
func NewScanner(log ports.Logger) *Scanner {
	return &Scanner{
		log:         log,
		port:        RawPrintPort,
		timeout:     defaultProbeTimeout,
		concurrency: defaultConcurrency,
		dial:        proxy.Dial,
		addrs:       net.InterfaceAddrs,
	}
}

// WithPort задает проверяемый порт.
func (s *Scanner) WithPort(port int) *Scanner {
	s.port = port
	return s
}

// WithTimeout задает таймаут одной проверки.
func (s *Scanner) WithTimeout(d time.Duration) *Scanner {
	s.timeout = d
	return s
}

// Scan проверяет все адреса подсетей локальных интерфейсов и возвращает
// отсортированный список host:port, на которых порт открыт.
func (s *Scanner) Scan(ctx context.Context) ([]string, error) {
	addrs, err := s.addrs()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения адресов интерфейсов: %w", err)
	}
	var hosts []string
	for _, a := range addrs {
		hosts = append(hosts, subnetHosts(a)...)
	}
	s.log.Info("scanning %d hosts on port %d", len(hosts), s.port)
	return s.Probe(ctx, hosts)
}

// Probe проверяет указанные хосты.
func (s *Scanner) Probe(ctx context.Context, hosts []string) ([]string, error) {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		found []string
	)
	sem := make(chan struct{}, s.concurrency)

	for _, host := range hosts {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(addr string) {
			defer wg.Done()
			defer func() { <-sem }()
			if s.probe(ctx, addr) {
				s.log.Info("found printer port at %s", addr)
				mu.Lock()
				found = append(found, addr)
				mu.Unlock()
			}
		}(net.JoinHostPort(host, strconv.Itoa(s.port)))
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}

func (s *Scanner) probe(ctx context.Context, addr string) bool {
	dialCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	conn, err := s.dial(dialCtx, "tcp", addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// subnetHosts перечисляет адреса IPv4 подсети /24 и меньше, кроме
// собственного адреса, адреса сети и широковещательного.
func subnetHosts(a net.Addr) []string {
	ipnet, ok := a.(*net.IPNet)
	if !ok || ipnet.IP.IsLoopback() {
		return nil
	}
	ip := ipnet.IP.To4()
	if ip == nil {
		return nil
	}
	ones, bits := ipnet.Mask.Size()
	if bits != 32 || ones < minPrefixLen || ones > 30 {
		return nil
	}

	base := ip.Mask(ipnet.Mask)
	size := 1 << (32 - ones)
	hosts := make([]string, 0, size-2)
	for i := 1; i < size-1; i++ {
		target := net.IPv4(base[0], base[1], base[2], base[3]+byte(i))
		if target.Equal(ip) {
			continue
		}
		hosts = append(hosts, target.String())
	}
	return hosts
}
