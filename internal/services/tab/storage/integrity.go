package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type contentEnvelope struct {
	TabID       string          `json:"tab_id"`
	Type        string          `json:"type"`
	TimestampMS int64           `json:"ts"`
	Payload     json.RawMessage `json:"payload"`
}

type chainEnvelope struct {
	Seq      uint64 `json:"seq"`
	Hash     string `json:"hash"`
	PrevHash string `json:"prev_hash"`
}

// EventHash returns the content hash of a record: SHA-256 over its tab,
// type, timestamp and payload, truncated to 128 bits.
func EventHash(rec Record) (string, error) {
	payload := json.RawMessage(rec.PayloadJSON)
	if len(payload) == 0 {
		payload = nil
	}
	data, err := json.Marshal(contentEnvelope{
		TabID:       rec.TabID,
		Type:        rec.Type,
		TimestampMS: rec.Timestamp.UTC().UnixMilli(),
		Payload:     payload,
	})
	if err != nil {
		return "", fmt.Errorf("encode event envelope: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16]), nil
}

// ChainHash links a record to its predecessor's chain hash.
func ChainHash(rec Record, prevHash string) (string, error) {
	data, err := json.Marshal(chainEnvelope{Seq: rec.Seq, Hash: rec.Hash, PrevHash: prevHash})
	if err != nil {
		return "", fmt.Errorf("encode chain envelope: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Seal assigns tab id, sequence numbers and hashes to records that follow a
// history ending at afterSeq with chain hash prevChainHash.
func Seal(tabID string, afterSeq uint64, prevChainHash string, records []Record, now func() time.Time) ([]Record, error) {
	tabID = strings.TrimSpace(tabID)
	if tabID == "" {
		return nil, ErrTabIDRequired
	}
	if now == nil {
		now = time.Now
	}
	sealed := make([]Record, len(records))
	prev := prevChainHash
	for i, rec := range records {
		if strings.TrimSpace(rec.Type) == "" {
			return nil, fmt.Errorf("record %d: event type is required", i)
		}
		rec.TabID = tabID
		rec.Seq = afterSeq + uint64(i) + 1
		if rec.Timestamp.IsZero() {
			rec.Timestamp = now()
		}
		rec.Timestamp = rec.Timestamp.UTC().Truncate(time.Millisecond)

		hash, err := EventHash(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rec.Hash = hash
		rec.PrevHash = prev
		chain, err := ChainHash(rec, prev)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rec.ChainHash = chain
		prev = chain
		sealed[i] = rec
	}
	return sealed, nil
}

// VerifyChain recomputes every hash of a tab history and reports the first
// record that does not match.
func VerifyChain(records []Record) error {
	prev := ""
	for i, rec := range records {
		if rec.Seq != uint64(i)+1 {
			return fmt.Errorf("%w: seq %d at position %d", ErrChainBroken, rec.Seq, i+1)
		}
		hash, err := EventHash(rec)
		if err != nil {
			return err
		}
		if hash != rec.Hash {
			return fmt.Errorf("%w: content hash mismatch at seq %d", ErrChainBroken, rec.Seq)
		}
		if rec.PrevHash != prev {
			return fmt.Errorf("%w: prev hash mismatch at seq %d", ErrChainBroken, rec.Seq)
		}
		chain, err := ChainHash(rec, prev)
		if err != nil {
			return err
		}
		if chain != rec.ChainHash {
			return fmt.Errorf("%w: chain hash mismatch at seq %d", ErrChainBroken, rec.Seq)
		}
		prev = chain
	}
	return nil
}
