package api

import (
	"bytes"
	"encoding/json"
)

// AuditEvent is a ledger event as produced by the explorer and minting services. Every field is
// optional and decoding never fails on unexpected value types.
type AuditEvent struct {
	ID                FlexString       `json:"id"`
	Type              FlexString       `json:"type"`
	Timestamp         FlexString       `json:"timestamp"`
	LockID            FlexString       `json:"lockId"`
	AuthorizationCode FlexString       `json:"authorizationCode"`
	PublicationCode   FlexString       `json:"publicationCode"`
	Amount            FlexString       `json:"amount"`
	Status            FlexString       `json:"status"`
	Actor             FlexString       `json:"actor"`
	Details           *EventDetails    `json:"details,omitempty"`
	Blockchain        *EventBlockchain `json:"blockchain,omitempty"`
	Signatures        EventSignatures  `json:"signatures,omitempty"`
}

type EventDetails struct {
	Beneficiary FlexString `json:"beneficiary"`
	BankName    FlexString `json:"bankName"`
}

type EventBlockchain struct {
	TxHash      FlexString `json:"txHash"`
	BlockNumber FlexInt    `json:"blockNumber"`
	Network     FlexString `json:"network"`
	ChainID     FlexInt    `json:"chainId"`
}

type EventSignature struct {
	Role      FlexString `json:"role"`
	Hash      FlexString `json:"hash"`
	Timestamp FlexString `json:"timestamp"`
}

// EventSignatures decodes a JSON array of signatures; non-array values decode to nil and
// non-object elements are dropped.
type EventSignatures []EventSignature

func (e *AuditEvent) UnmarshalJSON(data []byte) error {
	type plain AuditEvent
	*e = AuditEvent{}
	if !isObject(data) {
		return nil
	}
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	*e = AuditEvent(v)
	return nil
}

func (d *EventDetails) UnmarshalJSON(data []byte) error {
	type plain EventDetails
	*d = EventDetails{}
	if isObject(data) {
		_ = json.Unmarshal(data, (*plain)(d))
	}
	return nil
}

func (b *EventBlockchain) UnmarshalJSON(data []byte) error {
	type plain EventBlockchain
	*b = EventBlockchain{}
	if isObject(data) {
		_ = json.Unmarshal(data, (*plain)(b))
	}
	return nil
}

func (s *EventSignatures) UnmarshalJSON(data []byte) error {
	*s = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	out := make(EventSignatures, 0, len(items))
	for _, item := range items {
		if !isObject(item) {
			continue
		}
		type plain EventSignature
		var sig plain
		if err := json.Unmarshal(item, &sig); err == nil {
			out = append(out, EventSignature(sig))
		}
	}
	*s = out
	return nil
}

type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type ReportConfig struct {
	Title                 string     `json:"title"`
	Subtitle              string     `json:"subtitle"`
	Platform              string     `json:"platform"`
	GeneratedBy           string     `json:"generated_by"`
	DateRange             *DateRange `json:"date_range,omitempty"`
	IncludeBlockchainData bool       `json:"include_blockchain_data"`
	IncludeSignatures     bool       `json:"include_signatures"`
}

// GenerateRequest is the body of an ad-hoc report request carrying its own events.
type GenerateRequest struct {
	Config ReportConfig `json:"config"`
	Events []AuditEvent `json:"events"`
}

type AuditSummary struct {
	Transactions   int            `json:"transactions"`
	Counts         map[string]int `json:"counts"`
	TotalVolume    string         `json:"total_volume"`
	TotalMinted    string         `json:"total_minted"`
	AvgTransaction string         `json:"avg_transaction"`
	MaxTransaction string         `json:"max_transaction"`
	SuccessRate    float64        `json:"success_rate"`
	WithTxHash     int            `json:"with_tx_hash"`
	WithSignatures int            `json:"with_signatures"`
	Signatures     int            `json:"signatures"`
}
