package types

// NetworkInfo is the gateway's GET /info response.
type NetworkInfo struct {
	Network          string `json:"network"`
	Version          int64  `json:"version"`
	Release          int64  `json:"release"`
	Height           int64  `json:"height"`
	Current          string `json:"current"`
	Blocks           int64  `json:"blocks"`
	Peers            int64  `json:"peers"`
	QueueLength      int64  `json:"queue_length"`
	NodeStateLatency int64  `json:"node_state_latency"`
}

// TxStatus is the gateway's GET /tx/{id}/status response for an accepted
// transaction.
type TxStatus struct {
	BlockHeight           int64  `json:"block_height"`
	BlockIndepHash        string `json:"block_indep_hash"`
	NumberOfConfirmations int64  `json:"number_of_confirmations"`
}

// ChunkUpload is the POST /chunk request body. Offset is the absolute index
// of the chunk's final byte within the transaction payload, and DataPath is
// the merkle proof tying the chunk to DataRoot. DataSize and Offset travel
// as decimal strings.
type ChunkUpload struct {
	DataRoot Base64 `json:"data_root"`
	DataSize string `json:"data_size"`
	DataPath Base64 `json:"data_path"`
	Offset   string `json:"offset"`
	Chunk    Base64 `json:"chunk"`
}
