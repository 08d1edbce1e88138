package api

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}

type CorpusRequest struct {
	Input *InputValue `json:"input"`
}

type CorpusResponse struct {
	Object        string `json:"object"`
	Added         int    `json:"added"`
	Texts         int    `json:"texts"`
	DistinctWords int    `json:"distinct_words"`
	TotalWords    int    `json:"total_words"`
	Version       uint64 `json:"version"`
}

type TrainRequest struct {
	Iterations *int `json:"iterations"`
}

type TrainResponse struct {
	Object     string `json:"object"`
	Strategy   string `json:"strategy"`
	Iterations int    `json:"iterations"`
	VocabSize  int    `json:"vocab_size"`
	PadID      int    `json:"pad_id"`
	Version    uint64 `json:"version"`
}

type EncodeRequest struct {
	Input        *InputValue `json:"input"`
	Padding      bool        `json:"padding,omitempty"`
	MaxLength    int         `json:"max_length,omitempty"`
	ReturnTokens bool        `json:"return_tokens,omitempty"`
}

// EncodeResponse mirrors the request shape: IDs and Tokens are flat lists
// for a string input and lists of lists for an array input.
type EncodeResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	IDs     any    `json:"ids"`
	Tokens  any    `json:"tokens,omitempty"`
}

type VocabEntry struct {
	ID    int    `json:"id"`
	Token string `json:"token"`
}

type VocabResponse struct {
	Object string       `json:"object"`
	PadID  int          `json:"pad_id"`
	Data   []VocabEntry `json:"data"`
}

type StatusResponse struct {
	Object        string `json:"object"`
	Strategy      string `json:"strategy"`
	Trained       bool   `json:"trained"`
	Iterations    int    `json:"iterations,omitempty"`
	VocabSize     int    `json:"vocab_size,omitempty"`
	Texts         int    `json:"texts"`
	DistinctWords int    `json:"distinct_words"`
	TotalWords    int    `json:"total_words"`
	Version       uint64 `json:"version"`
}

type SaveResponse struct {
	ID     string `json:"id"`
	Object string `json:"object"`
	Path   string `json:"path"`
}
