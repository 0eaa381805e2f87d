package rpc

import (
	"github.com/alder-network/alder/lib"
	"github.com/alder-network/alder/lib/crypto"
)

// =====================================================
// Request Types
// =====================================================

type commitRequest struct {
	Value lib.HexBytes `json:"value"`
}

type indexRequest struct {
	Index uint64 `json:"index"`
}

type verifyRequest struct {
	Value lib.HexBytes        `json:"value"`
	Proof *crypto.MerkleProof `json:"proof"`
	Root  lib.HexBytes        `json:"root"`
}

// =====================================================
// Response Types
// =====================================================

type commitResponse struct {
	Index uint64       `json:"index"`
	Root  lib.HexBytes `json:"root"`
}

type healthResponse struct {
	Status          string `json:"status"`
	Version         string `json:"version"`
	CommitmentCount uint64 `json:"commitmentCount"`
}

type rootResponse struct {
	Root            lib.HexBytes `json:"root"`
	CommitmentCount uint64       `json:"commitmentCount"`
	HashAlgorithm   string       `json:"hashAlgorithm"`
}

type proofResponse struct {
	Index uint64              `json:"index"`
	Value lib.HexBytes        `json:"value"`
	Root  lib.HexBytes        `json:"root"`
	Proof *crypto.MerkleProof `json:"proof"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

// resourceUsageResponse aggregates process and system usage for the admin endpoint
type resourceUsageResponse struct {
	Process processResourceUsage `json:"process"`
	System  systemResourceUsage  `json:"system"`
}

type processResourceUsage struct {
	Name          string  `json:"name"`
	UsedMemoryMB  float64 `json:"usedMemoryMB"`
	UsedCPUPct    float64 `json:"usedCPUPercent"`
	FileDescCount int32   `json:"fileDescriptors"`
	ThreadCount   int32   `json:"threadCount"`
}

type systemResourceUsage struct {
	TotalRAMMB     float64 `json:"totalRAMMB"`
	AvailableRAMMB float64 `json:"availableRAMMB"`
	UsedRAMPct     float64 `json:"usedRAMPercent"`
	UsedCPUPct     float64 `json:"usedCPUPercent"`
	UsedDiskPct    float64 `json:"usedDiskPercent"`
}
