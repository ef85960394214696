package service

import (
	"testing"
	"time"

	"cash-register/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionLedger_AppendKeepsTimeOrder(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	l := NewTransactionLedger()

	late := domain.NewInflow(300, nil, base.Add(2*time.Minute))
	early := domain.NewInflow(100, nil, base)
	middle := domain.NewOutflow(50, nil, base.Add(time.Minute))
	sameAsMiddle := domain.NewInflow(7, nil, base.Add(time.Minute))

	l.Append(late)
	l.Append(early, middle)
	l.Append(sameAsMiddle)

	_, all := l.AsOf(base.Add(time.Hour))
	require.Len(t, all, 4)
	assert.Equal(t, early.ID, all[0].ID)
	assert.Equal(t, middle.ID, all[1].ID)
	assert.Equal(t, sameAsMiddle.ID, all[2].ID)
	assert.Equal(t, late.ID, all[3].ID)
}

func TestTransactionLedger_AsOf(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	l := NewTransactionLedger()
	l.Append(
		domain.NewInflow(280500, nil, base),
		domain.NewOutflow(150500, nil, base),
		domain.NewOutflow(130000, nil, base.Add(time.Hour)),
	)

	tests := []struct {
		name        string
		asOf        time.Time
		wantBalance int64
		wantEntries int
	}{
		{"before everything", base.Add(-time.Second), 0, 0},
		{"inclusive of exact timestamp", base, 130000, 2},
		{"between", base.Add(30 * time.Minute), 130000, 2},
		{"after empty", base.Add(2 * time.Hour), 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, entries := l.AsOf(tt.asOf)
			assert.Equal(t, tt.wantBalance, balance)
			assert.Len(t, entries, tt.wantEntries)
		})
	}
	assert.Equal(t, 3, l.Len())
}
