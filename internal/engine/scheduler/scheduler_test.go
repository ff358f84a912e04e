package scheduler_test

import (
	"testing"

	"go.uber.org/mock/gomock"

	"go.trai.ch/weft/internal/core/ports/mocks"
	"go.trai.ch/weft/internal/engine/scheduler"
)

func TestFIFO_OrderAndSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := scheduler.NewFIFO()

	var nodes []*mocks.MockSchedulable
	for i := uint64(1); i <= 3; i++ {
		n := mocks.NewMockSchedulable(ctrl)
		n.EXPECT().ID().Return(i).AnyTimes()
		nodes = append(nodes, n)
		if err := f.Submit(n); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	if got := f.QueueSize(); got != 3 {
		t.Fatalf("queue size = %d, want 3", got)
	}

	for i := uint64(1); i <= 3; i++ {
		next, ok := f.Next()
		if !ok {
			t.Fatal("queue drained early")
		}
		if next.ID() != i {
			t.Fatalf("popped id %d, want %d", next.ID(), i)
		}
	}
}

func TestFIFO_CloseDrainsThenStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := scheduler.NewFIFO()
	n := mocks.NewMockSchedulable(ctrl)
	if err := f.Submit(n); err != nil {
		t.Fatalf("submit: %v", err)
	}

	f.Close()

	if _, ok := f.Next(); !ok {
		t.Fatal("queued node must drain after close")
	}
	if _, ok := f.Next(); ok {
		t.Fatal("closed empty queue must report done")
	}
	if err := f.Submit(n); err == nil {
		t.Fatal("submit after close must fail")
	}
}

func TestFIFO_AtSuccessorRecordsHint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := scheduler.NewFIFO()

	source := mocks.NewMockSchedulable(ctrl)
	source.EXPECT().ID().Return(uint64(7)).AnyTimes()
	target := mocks.NewMockSchedulable(ctrl)
	target.EXPECT().SetSchedulerData(scheduler.Hint{LastSource: 7, NewEdge: true, Remaining: 2})

	f.AtSuccessor(target, source, true, 2)
}
