package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRows 预置行数据的 pgx.Rows 实现
type fakeRows struct {
	values  [][]any
	pos     int
	err     error
	scanErr error
	closed  bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := r.values[r.pos-1]
	for i := range dest {
		*(dest[i].(*int64)) = row[i].(int64)
	}
	return nil
}

func (r *fakeRows) Values() ([]any, error) { return r.values[r.pos-1], nil }

// 全部行必须在返回前被消费并关闭,不能把活动的 rows 泄漏到超时范围之外
func TestConsumeRows_DrainsBeforeReturn(t *testing.T) {
	rows := &fakeRows{values: [][]any{{int64(1)}, {int64(2)}, {int64(3)}}}

	var got []int64
	err := consumeRows(rows, func(rs pgx.Rows) error {
		for rs.Next() {
			var v int64
			if err := rs.Scan(&v); err != nil {
				return err
			}
			got = append(got, v)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("consumeRows() error = %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("scanned = %v, want [1 2 3]", got)
	}
	if !rows.closed {
		t.Error("rows must be closed when consumeRows returns")
	}
}

func TestConsumeRows_ScanErrorClosesRows(t *testing.T) {
	scanErr := errors.New("scan failed")
	rows := &fakeRows{values: [][]any{{int64(1)}}, scanErr: scanErr}

	err := consumeRows(rows, func(rs pgx.Rows) error {
		for rs.Next() {
			var v int64
			if err := rs.Scan(&v); err != nil {
				return err
			}
		}
		return nil
	})
	if !errors.Is(err, scanErr) {
		t.Errorf("error = %v, want %v", err, scanErr)
	}
	if !rows.closed {
		t.Error("rows must be closed on scan error")
	}
}

func TestConsumeRows_SurfacesRowsErr(t *testing.T) {
	rowsErr := errors.New("read interrupted")
	rows := &fakeRows{err: rowsErr}

	err := consumeRows(rows, func(rs pgx.Rows) error {
		for rs.Next() {
		}
		return nil
	})
	if !errors.Is(err, rowsErr) {
		t.Errorf("error = %v, want %v", err, rowsErr)
	}
}

func TestApplyQueryTimeout(t *testing.T) {
	c := &Client{cfg: DefaultConfig()}

	ctx, cancel := c.applyQueryTimeout(context.Background())
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Error("positive QueryTimeout must set a deadline")
	}

	c.cfg.QueryTimeout = 0
	parent, parentCancel := context.WithTimeout(context.Background(), time.Minute)
	defer parentCancel()
	ctx, cancel = c.applyQueryTimeout(parent)
	defer cancel()
	if ctx != parent {
		t.Error("zero QueryTimeout must pass the caller context through")
	}
}
