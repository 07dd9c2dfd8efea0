package dto

import "time"

type FundWalletInput struct {
	Owner  string
	Amount uint64
	At     time.Time
}

type FundTreasuryInput struct {
	Amount uint64
	At     time.Time
}

type OpenVaultInput struct {
	Owner        string
	CommitmentID uint64
	Amount       uint64
	At           time.Time
}

// ReleaseInput draws Amount from a vault into the beneficiary's wallet.
type ReleaseInput struct {
	VaultID     string
	Beneficiary string
	Amount      uint64
	Authority   string
	At          time.Time
}

// TopUpInput moves Amount from the reward treasury into a vault.
type TopUpInput struct {
	VaultID   string
	Amount    uint64
	Authority string
	At        time.Time
}

type AccountOutput struct {
	ID           string
	Kind         string
	Owner        string
	Authority    string
	CommitmentID uint64
	Balance      uint64
}

type TransferOutput struct {
	ID        string
	From      string
	To        string
	Amount    uint64
	Authority string
	Memo      string
	CreatedAt time.Time
}
