package storage

import (
	"errors"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 18, 30, 0, 123456789, time.UTC)
}

func sampleRecords() []Record {
	return []Record{
		{Type: "tab_opened", PayloadJSON: []byte(`{"table_number":4,"waiter":"Ana"}`)},
		{Type: "drinks_ordered", PayloadJSON: []byte(`{"items":[{"menu_number":1,"description":"Cola","is_drink":true,"price":2}]}`)},
	}
}

func TestSealAssignsSeqAndChain(t *testing.T) {
	sealed, err := Seal("tab-1", 0, "", sampleRecords(), fixedNow)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if sealed[0].Seq != 1 || sealed[1].Seq != 2 {
		t.Fatalf("seqs = %d,%d, want 1,2", sealed[0].Seq, sealed[1].Seq)
	}
	if sealed[0].PrevHash != "" {
		t.Fatalf("first prev hash = %q, want empty", sealed[0].PrevHash)
	}
	if sealed[1].PrevHash != sealed[0].ChainHash {
		t.Fatalf("second prev hash = %q, want %q", sealed[1].PrevHash, sealed[0].ChainHash)
	}
	if sealed[0].Hash == "" || sealed[0].ChainHash == "" {
		t.Fatal("expected hashes")
	}
	if !sealed[0].Timestamp.Equal(fixedNow().Truncate(time.Millisecond)) {
		t.Fatalf("timestamp = %v, want ms truncation", sealed[0].Timestamp)
	}
	if err := VerifyChain(sealed); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestSealContinuesExistingChain(t *testing.T) {
	first, err := Seal("tab-1", 0, "", sampleRecords()[:1], fixedNow)
	if err != nil {
		t.Fatalf("seal first: %v", err)
	}
	second, err := Seal("tab-1", Version(first), first[0].ChainHash, sampleRecords()[1:], fixedNow)
	if err != nil {
		t.Fatalf("seal second: %v", err)
	}
	if err := VerifyChain(append(first, second...)); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestSealRequiresTabIDAndType(t *testing.T) {
	if _, err := Seal(" ", 0, "", sampleRecords(), fixedNow); !errors.Is(err, ErrTabIDRequired) {
		t.Fatalf("err = %v, want %v", err, ErrTabIDRequired)
	}
	if _, err := Seal("tab-1", 0, "", []Record{{PayloadJSON: []byte(`{}`)}}, fixedNow); err == nil {
		t.Fatal("expected missing type error")
	}
}

func TestVerifyChainDetectsTampering(t *testing.T) {
	sealed, err := Seal("tab-1", 0, "", sampleRecords(), fixedNow)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	sealed[1].PayloadJSON = []byte(`{"items":[]}`)
	if err := VerifyChain(sealed); !errors.Is(err, ErrChainBroken) {
		t.Fatalf("err = %v, want %v", err, ErrChainBroken)
	}
}

func TestEventHashIgnoresPayloadWhitespace(t *testing.T) {
	a := Record{TabID: "t", Type: "x", Timestamp: fixedNow(), PayloadJSON: []byte(`{"a": 1}`)}
	b := Record{TabID: "t", Type: "x", Timestamp: fixedNow(), PayloadJSON: []byte(`{"a":1}`)}
	ha, err := EventHash(a)
	if err != nil {
		t.Fatalf("hash a: %v", err)
	}
	hb, err := EventHash(b)
	if err != nil {
		t.Fatalf("hash b: %v", err)
	}
	if ha != hb {
		t.Fatalf("hashes differ: %s vs %s", ha, hb)
	}
}
