package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"receiptprinter/internal/clock"
	"receiptprinter/internal/config"
	"receiptprinter/internal/domain/ports"
	"receiptprinter/internal/infrastructure/logger"
	"receiptprinter/internal/receipt"
	"receiptprinter/internal/service/connection"
	"receiptprinter/internal/service/discovery"
	"receiptprinter/internal/service/monitor"
	"receiptprinter/pkg/escpos"
)

// env - общее окружение подкоманд.
type env struct {
	cfg   *config.Config
	log   *logger.ZapLogger
	svc   *connection.Service
	clock clock.Clock
}

func setup(fs *pflag.FlagSet, args []string) (*env, error) {
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg, err := config.Load(fs)
	if err != nil {
		return nil, err
	}
	log, err := logger.NewZapLogger(cfg.LoggerSettings())
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, svc: connection.NewService(log), clock: clock.NewSystem()}, nil
}

// stamp фиксирует дату чека до подключения к принтеру.
func (e *env) stamp() string {
	return receipt.Stamp(e.clock, e.log)
}

// emitReceipt печатает чек на открытом принтере.
func emitReceipt(ctx context.Context, e *env, p ports.Printer, stamp string) error {
	emitter := receipt.NewEmitter(p, e.clock, e.cfg.ReceiptOptions(), e.log)
	return emitter.EmitAt(ctx, stamp)
}

func runPrint(ctx context.Context, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("print", pflag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "print the command sequence instead of sending it to the printer")
	e, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer e.log.Sync()
	stamp := e.stamp()

	if *dryRun {
		rec := escpos.NewRecorder()
		if err := emitReceipt(ctx, e, rec, stamp); err != nil {
			return err
		}
		for _, c := range rec.Calls() {
			fmt.Fprintln(out, c.String())
		}
		fmt.Fprintln(out, "done")
		return nil
	}

	p, err := e.svc.Open(e.cfg.EscposConfig(e.log.TxHook()))
	if err != nil {
		return err
	}
	defer p.Close()

	if err := emitReceipt(ctx, e, p, stamp); err != nil {
		return err
	}
	fmt.Fprintln(out, "done")
	return nil
}

func runDump(ctx context.Context, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("dump", pflag.ContinueOnError)
	output := fs.StringP("output", "o", "", "file to write the ESC/POS byte stream to")
	e, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer e.log.Sync()
	if *output == "" {
		return errors.New("--output is required")
	}

	stamp := e.stamp()

	cfg := e.cfg.EscposConfig(e.log.TxHook())
	cfg.Connection = escpos.ConnFile
	cfg.OutputPath = *output
	p, err := e.svc.Open(cfg)
	if err != nil {
		return err
	}
	if err := emitReceipt(ctx, e, p, stamp); err != nil {
		p.Close()
		return err
	}
	if err := p.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "written %s\n", *output)
	return nil
}

func runStatus(ctx context.Context, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("status", pflag.ContinueOnError)
	watch := fs.Bool("watch", false, "keep polling and report state changes until interrupted")
	interval := fs.Duration("interval", 2*time.Second, "poll interval for --watch")
	e, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer e.log.Sync()

	p, err := e.svc.Open(e.cfg.EscposConfig(e.log.TxHook()))
	if err != nil {
		return err
	}
	defer p.Close()

	if *watch {
		mon := monitor.NewService(p, monitor.Config{PollInterval: *interval}, e.log)
		mon.SetUpdateCallback(func(st escpos.Status) { printStatus(out, &st) })
		if err := mon.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	st, err := p.Status(ctx)
	if err != nil {
		return err
	}
	printStatus(out, st)
	return nil
}

func printStatus(out io.Writer, st *escpos.Status) {
	fmt.Fprintf(out, "online: %t\ncover open: %t\npaper: %s\n", st.Online, st.CoverOpen, st.Paper)
}

func runPorts(args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("ports", pflag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	svc := connection.NewService(logger.NewNop())
	list, err := svc.SystemPorts()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "no serial ports found")
		return nil
	}
	for _, port := range list {
		if port.IsUSB {
			fmt.Fprintf(out, "%s\tUSB %s:%s %s %s\n", port.Name, port.VID, port.PID, port.Product, port.SerialNumber)
			continue
		}
		fmt.Fprintln(out, port.Name)
	}
	return nil
}

func runScan(ctx context.Context, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("scan", pflag.ContinueOnError)
	port := fs.Int("port", discovery.RawPrintPort, "TCP port to probe")
	e, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer e.log.Sync()

	found, err := discovery.NewScanner(e.log).WithPort(*port).Scan(ctx)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Fprintln(out, "no network printers found")
		return nil
	}
	for _, addr := range found {
		fmt.Fprintln(out, addr)
	}
	return nil
}
