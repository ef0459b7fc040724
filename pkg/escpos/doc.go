// Package escpos provides a driver for ESC/POS thermal receipt printers.
// It encodes high-level print operations (text styling, bit images, native QR
// codes, barcodes, paper cut) into printer control codes and writes them over
// a serial line, a raw TCP socket or a plain file.
//
// Key Features:
//   - Serial transport (go.bug.st/serial) with configurable 8N1-style framing and DTR/DSR flow control
//   - Raw TCP transport (port 9100) dialed through golang.org/x/net/proxy
//   - File transport for dumping the byte stream without hardware
//   - Code page text encoding via golang.org/x/text/encoding/charmap
//   - Logo rendering in column bit-image and raster modes
//   - Real-time status queries (DLE EOT)
//
// Example Usage:
//
//	p, err := escpos.New(escpos.Config{
//	    Connection: escpos.ConnSerial,
//	    Device:     "/dev/serial0",
//	    BaudRate:   9600,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := p.Open(); err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	ctx := context.Background()
//	_ = p.Set(ctx, escpos.DefaultStyle())
//	_ = p.Textln(ctx, "HELLO")
//	_ = p.Cut(ctx, escpos.CutFull)
//
// Recorder implements Printer in memory and is meant for tests and dry runs.
package escpos
