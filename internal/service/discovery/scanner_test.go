package discovery

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receiptprinter/internal/infrastructure/logger"
)

func TestSubnetHosts(t *testing.T) {
	_, n, err := net.ParseCIDR("192.168.1.0/29")
	require.NoError(t, err)
	n.IP = net.ParseIP("192.168.1.3").To4()

	hosts := subnetHosts(n)
	assert.Equal(t, []string{"192.168.1.1", "192.168.1.2", "192.168.1.4", "192.168.1.5", "192.168.1.6"}, hosts)
}

func TestSubnetHosts_Skipped(t *testing.T) {
	tests := []struct {
		name string
		cidr string
		ip   string
	}{
		{"loopback", "127.0.0.0/8", "127.0.0.1"},
		{"large network", "10.0.0.0/16", "10.0.0.5"},
		{"ipv6", "fe80::/64", "fe80::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, n, err := net.ParseCIDR(tt.cidr)
			require.NoError(t, err)
			n.IP = net.ParseIP(tt.ip)
			assert.Empty(t, subnetHosts(n))
		})
	}
}

func TestProbe_FindsListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			c.Close()
		}
	}()
	port := ln.Addr().(*net.TCPAddr).Port

	s := NewScanner(logger.NewNop()).WithPort(port).WithTimeout(time.Second)
	found, err := s.Probe(context.Background(), []string{"127.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, []string{net.JoinHostPort("127.0.0.1", strconv.Itoa(port))}, found)
}

func TestScan_UsesInterfaceAddrs(t *testing.T) {
	_, n, err := net.ParseCIDR("10.1.2.0/30")
	require.NoError(t, err)
	n.IP = net.ParseIP("10.1.2.1").To4()

	var dialed []string
	s := NewScanner(logger.NewNop())
	s.addrs = func() ([]net.Addr, error) { return []net.Addr{n}, nil }
	s.concurrency = 1
	s.dial = func(ctx context.Context, network, addr string) (net.Conn, error) {
		dialed = append(dialed, addr)
		client, server := net.Pipe()
		server.Close()
		return client, nil
	}

	found, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"10.1.2.2:9100"}, dialed)
	assert.Equal(t, []string{"10.1.2.2:9100"}, found)
}

func TestProbe_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScanner(logger.NewNop())
	s.dial = func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, ctx.Err()
	}
	_, err := s.Probe(ctx, []string{"10.0.0.1", "10.0.0.2"})
	assert.ErrorIs(t, err, context.Canceled)
}
