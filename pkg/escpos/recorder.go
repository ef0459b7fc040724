package escpos

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Call - одна записанная операция Recorder.
type Call struct {
	Op   string
	Args []interface{}
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		switch v := a.(type) {
		case string:
			args[i] = fmt.Sprintf("%q", v)
		default:
			args[i] = fmt.Sprintf("%+v", v)
		}
	}
	return c.Op + "(" + strings.Join(args, ", ") + ")"
}

// Recorder - Printer в памяти: ничего не печатает, запоминает вызовы.
// Ошибку для конкретной операции можно подставить через FailOn.
type Recorder struct {
	mu     sync.Mutex
	calls  []Call
	open   bool
	failOn map[string]error

	// StatusResult возвращается из Status.
	StatusResult Status
}

// NewRecorder создаёт пустой Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		failOn:       make(map[string]error),
		StatusResult: Status{Online: true, Paper: PaperOK},
	}
}

// FailOn заставляет операцию op возвращать err. Вызов при этом записывается.
func (r *Recorder) FailOn(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failOn[op] = err
}

// Calls возвращает копию записанных вызовов.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset очищает журнал вызовов.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// IsOpen сообщает, открыта ли сессия.
func (r *Recorder) IsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open
}

func (r *Recorder) record(ctx context.Context, op string, args ...interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Op: op, Args: args})
	return r.failOn[op]
}

func (r *Recorder) Open() error {
	if err := r.record(context.Background(), "open"); err != nil {
		return err
	}
	r.mu.Lock()
	r.open = true
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	r.open = false
	r.mu.Unlock()
	return r.record(context.Background(), "close")
}

func (r *Recorder) Initialize(ctx context.Context) error {
	return r.record(ctx, "init")
}

func (r *Recorder) Set(ctx context.Context, style Style) error {
	if err := style.Validate(); err != nil {
		return err
	}
	return r.record(ctx, "set", style)
}

func (r *Recorder) Text(ctx context.Context, s string) error {
	return r.record(ctx, "text", s)
}

func (r *Recorder) Textln(ctx context.Context, s string) error {
	return r.record(ctx, "textln", s)
}

func (r *Recorder) Feed(ctx context.Context, lines int) error {
	return r.record(ctx, "feed", lines)
}

func (r *Recorder) Image(ctx context.Context, path string, opts ImageOptions) error {
	return r.record(ctx, "image", path, opts.Impl)
}

func (r *Recorder) QR(ctx context.Context, content string, opts QROptions) error {
	if content == "" {
		return ErrEmptyQR
	}
	return r.record(ctx, "qr", content, opts.Size)
}

func (r *Recorder) Barcode(ctx context.Context, code string, sym Symbology, opts BarcodeOptions) error {
	if err := ValidateBarcode(code, sym); err != nil {
		return err
	}
	return r.record(ctx, "barcode", code, sym)
}

func (r *Recorder) Cut(ctx context.Context, mode CutMode) error {
	return r.record(ctx, "cut", mode)
}

func (r *Recorder) Status(ctx context.Context) (*Status, error) {
	if err := r.record(ctx, "status"); err != nil {
		return nil, err
	}
	st := r.StatusResult
	return &st, nil
}
