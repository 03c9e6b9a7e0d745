package types

import "testing"

func TestResultConstructors(t *testing.T) {
	t.Run("Ok", func(t *testing.T) {
		r := Ok(NewNum(42))
		if !r.IsNormal() {
			t.Error("Ok() should create normal result")
		}
		if !r.Val.Equal(NewNum(42)) {
			t.Errorf("Expected value 42, got %v", r.Val)
		}
	})

	t.Run("Err", func(t *testing.T) {
		r := Err(UnboundName("x"))
		if !r.IsError() {
			t.Error("Err() should create error result")
		}
		if CodeOf(r.Err) != E_UNBOUND {
			t.Errorf("Expected E_UNBOUND, got %v", CodeOf(r.Err))
		}
	})

	t.Run("Return", func(t *testing.T) {
		r := Return(NewNum(42))
		if !r.IsReturn() {
			t.Error("Return() should create return result")
		}
		if !r.Val.Equal(NewNum(42)) {
			t.Errorf("Expected value 42, got %v", r.Val)
		}
	})

	t.Run("Return without value", func(t *testing.T) {
		r := Return(nil)
		if !r.Val.Equal(Nil) {
			t.Errorf("Expected nil value, got %v", r.Val)
		}
	})

	t.Run("Exit", func(t *testing.T) {
		r := Exit()
		if !r.IsExit() || !r.IsSignal() {
			t.Error("Exit() should create an exit signal")
		}
	})
}

func TestResultPredicates(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		isNormal bool
		isError  bool
		isReturn bool
		isSignal bool
	}{
		{"normal", Ok(NewNum(42)), true, false, false, false},
		{"error", Err(NewError(E_TYPE, "x")), false, true, false, false},
		{"return", Return(NewNum(42)), false, false, true, true},
		{"resume", Resume(), false, false, false, true},
		{"goto", Goto(Nil), false, false, false, true},
		{"exit", Exit(), false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result.IsNormal() != tt.isNormal {
				t.Errorf("IsNormal() = %v, want %v", tt.result.IsNormal(), tt.isNormal)
			}
			if tt.result.IsError() != tt.isError {
				t.Errorf("IsError() = %v, want %v", tt.result.IsError(), tt.isError)
			}
			if tt.result.IsReturn() != tt.isReturn {
				t.Errorf("IsReturn() = %v, want %v", tt.result.IsReturn(), tt.isReturn)
			}
			if tt.result.IsSignal() != tt.isSignal {
				t.Errorf("IsSignal() = %v, want %v", tt.result.IsSignal(), tt.isSignal)
			}
		})
	}
}
