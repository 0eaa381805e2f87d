package rpc

import (
	"net/http"
	"os"

	"github.com/julienschmidt/httprouter"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Version writes Alder software's version information
func (s *Server) Version(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	write(w, SoftwareVersion, http.StatusOK)
}

// Health responds with the node status and the size of the ledger
func (s *Server) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	write(w, &healthResponse{
		Status:          "healthy",
		Version:         SoftwareVersion,
		CommitmentCount: s.store.Count(),
	}, http.StatusOK)
}

// Commit appends a value to the ledger and responds with its index and the new root
func (s *Server) Commit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(commitRequest)
	if ok := unmarshal(w, r, req); !ok {
		return
	}
	commitment, err := s.store.Commit(req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	write(w, &commitResponse{Index: commitment.Index, Root: commitment.Root}, http.StatusOK)
}

// Root responds with the root of the current tree snapshot
func (s *Server) Root(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	write(w, &rootResponse{
		Root:            s.store.Root(),
		CommitmentCount: s.store.Count(),
		HashAlgorithm:   s.store.HashAlgorithm(),
	}, http.StatusOK)
}

// Commitment responds with the commitment at the requested index
func (s *Server) Commitment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(indexRequest)
	if ok := unmarshal(w, r, req); !ok {
		return
	}
	commitment, err := s.store.GetCommitment(req.Index)
	if err != nil {
		writeError(w, err)
		return
	}
	write(w, commitment, http.StatusOK)
}

// Commitments responds with every commitment in ledger order
func (s *Server) Commitments(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	commitments, err := s.store.GetCommitments()
	if err != nil {
		writeError(w, err)
		return
	}
	write(w, commitments, http.StatusOK)
}

// Proof responds with an inclusion proof for the requested index against the current snapshot
func (s *Server) Proof(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(indexRequest)
	if ok := unmarshal(w, r, req); !ok {
		return
	}
	proof, value, root, err := s.store.Proof(req.Index)
	if err != nil {
		writeError(w, err)
		return
	}
	write(w, &proofResponse{Index: req.Index, Value: value, Root: root, Proof: proof}, http.StatusOK)
}

// Verify checks a standalone proof against a trusted root. A failed verification is a normal
// 200 response with valid=false; only a structurally invalid proof is an error
func (s *Server) Verify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(verifyRequest)
	if ok := unmarshal(w, r, req); !ok {
		return
	}
	valid, err := s.store.VerifyProof(req.Value, req.Proof, req.Root)
	if err != nil {
		writeError(w, err)
		return
	}
	write(w, &verifyResponse{Valid: valid}, http.StatusOK)
}

// Config responds with the node configuration
func (s *Server) Config(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	write(w, s.config, http.StatusOK)
}

// ResourceUsage retrieves node resource usage
func (s *Server) ResourceUsage(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	pm, err := mem.VirtualMemory() // os memory
	if err != nil {
		write(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cp, err := cpu.Percent(0, false) // os cpu percent
	if err != nil {
		write(w, err.Error(), http.StatusInternalServerError)
		return
	}
	d, err := disk.Usage("/") // os disk
	if err != nil {
		write(w, err.Error(), http.StatusInternalServerError)
		return
	}
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		write(w, err.Error(), http.StatusInternalServerError)
		return
	}
	name, err := p.Name()
	if err != nil {
		write(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		write(w, err.Error(), http.StatusInternalServerError)
		return
	}
	memInfo, err := p.MemoryInfo()
	if err != nil {
		write(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fds, err := p.NumFDs()
	if err != nil {
		write(w, err.Error(), http.StatusInternalServerError)
		return
	}
	threads, err := p.NumThreads()
	if err != nil {
		write(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var systemCPU float64
	if len(cp) != 0 {
		systemCPU = cp[0]
	}
	write(w, &resourceUsageResponse{
		Process: processResourceUsage{
			Name:          name,
			UsedMemoryMB:  float64(memInfo.RSS) / 1e6,
			UsedCPUPct:    cpuPercent,
			FileDescCount: fds,
			ThreadCount:   threads,
		},
		System: systemResourceUsage{
			TotalRAMMB:     float64(pm.Total) / 1e6,
			AvailableRAMMB: float64(pm.Available) / 1e6,
			UsedRAMPct:     pm.UsedPercent,
			UsedCPUPct:     systemCPU,
			UsedDiskPct:    d.UsedPercent,
		},
	}, http.StatusOK)
}
