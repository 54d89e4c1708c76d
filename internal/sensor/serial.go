package sensor

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/monitoring"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

// SerialFrameSource bridges a grid-eye-style thermal sensor attached over
// a serial port. Each line on the wire is 64 comma-separated Celsius
// values in row-major order, terminated by '\n'. A background goroutine
// scans the port and feeds a single-slot buffer; NextFrame drains it.
type SerialFrameSource struct {
	port   serial.Port
	buf    *buffer
	errs   chan error
	cancel context.CancelFunc
	done   chan struct{}
}

// OpenSerial opens portName at the sensor's fixed baud rate and starts the
// background reader. Call Close when done.
func OpenSerial(portName string) (*SerialFrameSource, error) {
	mode := &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: 1,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("sensor: open %s: %w", portName, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &SerialFrameSource{
		port:   port,
		buf:    newBuffer(),
		errs:   make(chan error, 8),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.run(ctx)
	return s, nil
}

func (s *SerialFrameSource) run(ctx context.Context) {
	defer close(s.done)
	scan := bufio.NewScanner(s.port)
	for scan.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		frame, err := parseFrameLine(scan.Text())
		if err != nil {
			monitoring.Logf("sensor: dropping malformed line: %v", err)
			select {
			case s.errs <- err:
			default:
			}
			continue
		}
		s.buf.put(reading{at: time.Now(), frame: frame})
	}
	if err := scan.Err(); err != nil {
		select {
		case s.errs <- err:
		default:
		}
	}
}

// NextFrame implements FrameSource.
func (s *SerialFrameSource) NextFrame(ctx context.Context) (time.Time, thermal.Frame, error) {
	r, err := s.buf.next(ctx)
	if err != nil {
		return time.Time{}, thermal.Frame{}, &thermal.SensorStalledError{Grace: StallGrace.String()}
	}
	return r.at, r.frame, nil
}

// Errors returns a channel of malformed-line and scan errors encountered
// by the background reader. Best-effort: full buffers drop the error.
func (s *SerialFrameSource) Errors() <-chan error {
	return s.errs
}

// Close stops the background reader and closes the serial port.
func (s *SerialFrameSource) Close() error {
	s.cancel()
	<-s.done
	return s.port.Close()
}

// ParseFrameLine parses one wire line (64 comma-separated Celsius values in
// row-major order) into a Frame. Exported so fixture replay in the root main
// package can share the serial wire format instead of reimplementing it.
func ParseFrameLine(line string) (thermal.Frame, error) {
	return parseFrameLine(line)
}

func parseFrameLine(line string) (thermal.Frame, error) {
	var f thermal.Frame
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != thermal.GridSize*thermal.GridSize {
		return f, fmt.Errorf("sensor: expected %d fields, got %d", thermal.GridSize*thermal.GridSize, len(fields))
	}
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return f, fmt.Errorf("sensor: field %d: %w", i, err)
		}
		f[i/thermal.GridSize][i%thermal.GridSize] = v
	}
	return f, nil
}
