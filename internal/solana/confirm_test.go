package solana

import (
	"context"
	"errors"
	"testing"
)

// fakeRPC implements RPCClient with canned signature statuses.
type fakeRPC struct {
	statuses map[string]*SignatureStatus
	err      error
}

func (f *fakeRPC) GetLatestBlockhash(context.Context) (Blockhash, error) {
	return Blockhash{}, nil
}

func (f *fakeRPC) GetSignatureStatuses(_ context.Context, sigs []string) ([]*SignatureStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*SignatureStatus, len(sigs))
	for i, s := range sigs {
		out[i] = f.statuses[s]
	}
	return out, nil
}

func (f *fakeRPC) GetBalance(context.Context, string) (uint64, error) {
	return 0, nil
}

// fakeWS implements WSClient with a canned result.
type fakeWS struct {
	result *SignatureResult
	err    error
	calls  int
}

func (f *fakeWS) WaitForSignature(context.Context, string) (*SignatureResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeWS) Close() error { return nil }

func TestConfirmationService_ConfirmedViaRPC(t *testing.T) {
	rpc := &fakeRPC{statuses: map[string]*SignatureStatus{
		"sig1": {Slot: 10, ConfirmationStatus: "finalized"},
	}}
	ws := &fakeWS{}
	svc := NewConfirmationService(rpc, ws)

	if err := svc.Confirm(context.Background(), "sig1"); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if ws.calls != 0 {
		t.Error("websocket should not be consulted when RPC confirms")
	}
}

func TestConfirmationService_FailedOnChain(t *testing.T) {
	rpc := &fakeRPC{statuses: map[string]*SignatureStatus{
		"sig1": {Slot: 10, ConfirmationStatus: "confirmed", Err: "InstructionError"},
	}}
	svc := NewConfirmationService(rpc, nil)

	err := svc.Confirm(context.Background(), "sig1")
	if !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
}

func TestConfirmationService_FallsBackToWS(t *testing.T) {
	rpc := &fakeRPC{statuses: map[string]*SignatureStatus{}}
	ws := &fakeWS{result: &SignatureResult{Signature: "sig1"}}
	svc := NewConfirmationService(rpc, ws)

	if err := svc.Confirm(context.Background(), "sig1"); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if ws.calls != 1 {
		t.Errorf("expected 1 websocket wait, got %d", ws.calls)
	}
}

func TestConfirmationService_NoWSNotVisible(t *testing.T) {
	rpc := &fakeRPC{statuses: map[string]*SignatureStatus{}}
	svc := NewConfirmationService(rpc, nil)

	err := svc.Confirm(context.Background(), "sig1")
	if !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
}

func TestConfirmationService_EmptySignature(t *testing.T) {
	svc := NewConfirmationService(&fakeRPC{}, nil)
	if err := svc.Confirm(context.Background(), ""); err == nil {
		t.Error("expected error for empty signature")
	}
}

func TestConfirmationService_RPCError(t *testing.T) {
	rpc := &fakeRPC{err: errors.New("boom")}
	svc := NewConfirmationService(rpc, nil)

	if err := svc.Confirm(context.Background(), "sig1"); err == nil {
		t.Error("expected error when RPC fails")
	}
}
