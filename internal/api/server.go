// Package api serves one shared tokenizer over HTTP.
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/subword/internal/logger"
	"github.com/samcharles93/subword/internal/modelstore"
	"github.com/samcharles93/subword/internal/tokenizer"
)

type Config struct {
	Logger logger.Logger
	// ModelPath enables POST /v1/model/save when set.
	ModelPath string
}

// Server owns a tokenizer and serializes access to it: corpus and train
// requests take the write lock, everything else the read lock.
type Server struct {
	mu        sync.RWMutex
	tok       *tokenizer.Tokenizer
	log       logger.Logger
	modelPath string
	clock     func() time.Time
}

func NewServer(tok *tokenizer.Tokenizer, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	return &Server{
		tok:       tok,
		log:       cfg.Logger,
		modelPath: cfg.ModelPath,
		clock:     time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/status", s.handleStatus)
	e.POST("/v1/corpus", s.handleAddCorpus)
	e.POST("/v1/train", s.handleTrain)
	e.POST("/v1/encode", s.handleEncode)
	e.GET("/v1/vocab", s.handleVocab)
	e.GET("/v1/vocab/:id", s.handleVocabEntry)
	e.POST("/v1/model/save", s.handleSave)
}

func (s *Server) handleStatus(c *echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.JSON(http.StatusOK, s.statusLocked())
}

func (s *Server) statusLocked() StatusResponse {
	corpus := s.tok.Corpus()
	resp := StatusResponse{
		Object:        "status",
		Strategy:      s.tok.Strategy().Name(),
		Trained:       s.tok.Trained(),
		Texts:         len(corpus.Texts()),
		DistinctWords: corpus.Len(),
		TotalWords:    corpus.TotalWords(),
		Version:       s.tok.Version(),
	}
	if v := s.tok.Vocabulary(); v != nil {
		resp.Iterations = s.tok.Iterations()
		resp.VocabSize = v.Len()
	}
	return resp
}

func (s *Server) handleAddCorpus(c *echo.Context) error {
	req, err := decodeJSON[CorpusRequest](c.Request().Body)
	if err != nil {
		return writeErr(c, err)
	}
	texts, _, err := req.Input.Texts()
	if err != nil {
		return writeErr(c, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok.Add(texts...)
	corpus := s.tok.Corpus()
	s.log.Info("corpus added", "texts", len(texts), "total_words", corpus.TotalWords())
	return c.JSON(http.StatusOK, CorpusResponse{
		Object:        "corpus",
		Added:         len(texts),
		Texts:         len(corpus.Texts()),
		DistinctWords: corpus.Len(),
		TotalWords:    corpus.TotalWords(),
		Version:       s.tok.Version(),
	})
}

func (s *Server) handleTrain(c *echo.Context) error {
	req, err := decodeJSON[TrainRequest](c.Request().Body)
	if err != nil {
		return writeErr(c, err)
	}
	if req.Iterations == nil {
		return writeBadRequest(c, "iterations is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	start := s.clock()
	if err := s.tok.Train(*req.Iterations); err != nil {
		return writeErr(c, err)
	}
	v := s.tok.Vocabulary()
	s.log.Info("trained",
		"iterations", *req.Iterations,
		"vocab_size", v.Len(),
		"elapsed", s.clock().Sub(start),
	)
	return c.JSON(http.StatusOK, TrainResponse{
		Object:     "vocabulary",
		Strategy:   s.tok.Strategy().Name(),
		Iterations: s.tok.Iterations(),
		VocabSize:  v.Len(),
		PadID:      v.PadID(),
		Version:    s.tok.Version(),
	})
}

func (s *Server) handleEncode(c *echo.Context) error {
	req, err := decodeJSON[EncodeRequest](c.Request().Body)
	if err != nil {
		return writeErr(c, err)
	}
	if req.MaxLength < 0 {
		return writeBadRequest(c, "max_length must not be negative")
	}
	texts, single, err := req.Input.Texts()
	if err != nil {
		return writeErr(c, err)
	}
	opts := tokenizer.EncodeOptions{Padding: req.Padding, MaxLength: req.MaxLength}

	s.mu.RLock()
	defer s.mu.RUnlock()
	ids, err := s.tok.EncodeBatch(texts, opts)
	if err != nil {
		return writeErr(c, err)
	}
	resp := EncodeResponse{
		ID:      newEncodingID(),
		Object:  "encoding",
		Created: s.clock().Unix(),
		IDs:     ids,
	}
	var tokens [][]string
	if req.ReturnTokens {
		if tokens, err = s.tok.TokenizeBatch(texts, opts); err != nil {
			return writeErr(c, err)
		}
		resp.Tokens = tokens
	}
	if single {
		resp.IDs = ids[0]
		if tokens != nil {
			resp.Tokens = tokens[0]
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleVocab(c *echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.tok.Vocabulary()
	if v == nil {
		return writeErr(c, tokenizer.ErrUntrained)
	}
	tokens := v.Tokens()
	data := make([]VocabEntry, len(tokens))
	for i, tok := range tokens {
		data[i] = VocabEntry{ID: i, Token: tok}
	}
	return c.JSON(http.StatusOK, VocabResponse{Object: "list", PadID: v.PadID(), Data: data})
}

func (s *Server) handleVocabEntry(c *echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return writeBadRequest(c, fmt.Sprintf("invalid token id %q", c.Param("id")))
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.tok.Vocabulary()
	if v == nil {
		return writeErr(c, tokenizer.ErrUntrained)
	}
	tok, err := v.IDToToken(id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, VocabEntry{ID: id, Token: tok})
}

func (s *Server) handleSave(c *echo.Context) error {
	if s.modelPath == "" {
		return writeError(c, http.StatusNotFound, "not_found_error", "no model path configured", "", "")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, err := modelstore.FromTokenizer(s.tok, s.clock())
	if err != nil {
		return writeErr(c, err)
	}
	if err := modelstore.Save(s.modelPath, f); err != nil {
		return writeErr(c, err)
	}
	s.log.Info("model saved", "path", s.modelPath, "id", f.ID)
	return c.JSON(http.StatusOK, SaveResponse{ID: f.ID, Object: "model", Path: s.modelPath})
}
