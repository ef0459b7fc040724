// Команда receipt печатает демонстрационный чек Circuit Digest на термопринтере
// ESC/POS, подключённом к одноплатному компьютеру.
//
// Использование:
//
//	receipt [print] [--dry-run] [flags]   print the receipt (default)
//	receipt dump --output FILE [flags]    write the raw ESC/POS bytes to FILE
//	receipt status [--watch] [flags]      query printer status (DLE EOT)
//	receipt ports                         list serial ports
//	receipt scan [--port N]               find network printers in local subnets
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, args := "print", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "print":
		err = runPrint(ctx, args, os.Stdout)
	case "dump":
		err = runDump(ctx, args, os.Stdout)
	case "status":
		err = runStatus(ctx, args, os.Stdout)
	case "ports":
		err = runPorts(args, os.Stdout)
	case "scan":
		err = runScan(ctx, args, os.Stdout)
	case "help":
		printUsage()
		return
	default:
		printUsage()
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "receipt: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  receipt [print] [--dry-run] [flags]   print the receipt (default)
  receipt dump --output FILE [flags]    write the raw ESC/POS bytes to FILE
  receipt status [--watch] [flags]      query printer status
  receipt ports                         list serial ports
  receipt scan [--port N]               find network printers in local subnets

Run "receipt <command> --help" for flags.
`)
}
