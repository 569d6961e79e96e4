package recorder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// DefaultMaxRows is the number of rows after which a file is finalized and a new one started.
const DefaultMaxRows = 10000

var ErrClosed = errors.New("recorder is closed")

// TurnRow is one decision taken by the server.
type TurnRow struct {
	GameID    string  `parquet:"game_id,dict"`
	SnakeID   string  `parquet:"snake_id,dict"`
	Turn      int32   `parquet:"turn"`
	Move      string  `parquet:"move,dict"`
	Score     float64 `parquet:"score"`
	Depth     int32   `parquet:"depth"`
	Explored  int64   `parquet:"explored"`
	ElapsedMs int64   `parquet:"elapsed_ms"`
	Width     int32   `parquet:"width"`
	Height    int32   `parquet:"height"`
	Snakes    int32   `parquet:"snakes"`
	Health    int32   `parquet:"health"`
	Length    int32   `parquet:"length"`
}

type file struct {
	tmpPath string
	outPath string
	f       *os.File
	writer  *parquet.GenericWriter[TurnRow]
	rows    int
}

// Writer appends TurnRows to zstd compressed parquet files. Files are written under
// dir/tmp and only moved into dir once finalized, so readers never see partial files.
// Writer is safe for concurrent use.
type Writer struct {
	mu      sync.Mutex
	dir     string
	tmpDir  string
	maxRows int
	current *file
	written []string
	opened  int
	closed  bool
}

// New prepares dir. Files are created lazily on the first Record.
func New(dir string, maxRows int) (*Writer, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		absDir = dir
	}
	tmpDir := filepath.Join(absDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &Writer{dir: absDir, tmpDir: tmpDir, maxRows: maxRows}, nil
}

func (w *Writer) open() (*file, error) {
	w.opened++
	name := fmt.Sprintf("turns_%d_%04d.parquet", time.Now().UnixNano(), w.opened)
	tmpPath := filepath.Join(w.tmpDir, name)
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}
	pw := parquet.NewGenericWriter[TurnRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	pw.SetKeyValueMetadata("schema", "turn_row_v1")
	return &file{
		tmpPath: tmpPath,
		outPath: filepath.Join(w.dir, name),
		f:       f,
		writer:  pw,
	}, nil
}

// Record appends one row, rotating to a new file once the current one is full.
func (w *Writer) Record(row TurnRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if w.current == nil {
		f, err := w.open()
		if err != nil {
			return err
		}
		w.current = f
	}
	if _, err := w.current.writer.Write([]TurnRow{row}); err != nil {
		return fmt.Errorf("write turn row: %w", err)
	}
	w.current.rows++
	if w.current.rows >= w.maxRows {
		return w.finalize()
	}
	return nil
}

// Files lists the finalized files, oldest first.
func (w *Writer) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.written...)
}

// Close finalizes the current file. Further Records fail with ErrClosed.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.finalize()
}

func (w *Writer) finalize() error {
	cur := w.current
	w.current = nil
	if cur == nil {
		return nil
	}
	closeErr := cur.writer.Close()
	_ = cur.f.Sync()
	fileErr := cur.f.Close()
	if closeErr != nil {
		return fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return fmt.Errorf("close parquet file: %w", fileErr)
	}
	if cur.rows == 0 {
		_ = os.Remove(cur.tmpPath)
		return nil
	}
	if err := os.Rename(cur.tmpPath, cur.outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	w.written = append(w.written, cur.outPath)
	return nil
}

// ReadFile loads every row of a finalized file.
func ReadFile(path string) ([]TurnRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, err
	}

	reader := parquet.NewGenericReader[TurnRow](pf)
	defer reader.Close()

	rows := make([]TurnRow, 0, int(reader.NumRows()))
	buf := make([]TurnRow, 256)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			rows = append(rows, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}
