package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/fitchkit/fitch/internal/parser"
	"github.com/fitchkit/fitch/internal/proof"
	"github.com/fitchkit/fitch/internal/render"
	"github.com/fitchkit/fitch/internal/store"
	"github.com/fitchkit/fitch/internal/truthtab"
)

// CreateRequest starts a proof session.
type CreateRequest struct {
	Goal string `json:"goal" binding:"required"`
	Name string `json:"name"`
}

// CreateResponse identifies the new session.
type CreateResponse struct {
	ID   string `json:"id"`
	Goal string `json:"goal"`
	Name string `json:"name,omitempty"`
}

// ProofSummary is one row of the session listing.
type ProofSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Goal     string `json:"goal"`
	Complete bool   `json:"complete"`
	Lines    int    `json:"lines"`
}

// GetResponse carries the full persisted form of one proof.
type GetResponse struct {
	ID       string          `json:"id"`
	Complete bool            `json:"complete"`
	Proof    *proof.Snapshot `json:"proof"`
}

// PremiseRequest adds a premise line.
type PremiseRequest struct {
	Formula string `json:"formula" binding:"required"`
	Comment string `json:"comment"`
}

// OpenRequest opens an assumption block.
type OpenRequest struct {
	Assumption string `json:"assumption" binding:"required"`
	Comment    string `json:"comment"`
}

// RuleRequest carries the arguments of one derivation rule. Which fields
// are consulted depends on the rule name in the URL.
type RuleRequest struct {
	Lines   []int  `json:"lines"`
	Blocks  []int  `json:"blocks"`
	Formula string `json:"formula"`
	Comment string `json:"comment"`
}

// LineResponse reports one appended line.
type LineResponse struct {
	Line      int    `json:"line"`
	Statement string `json:"statement"`
	Complete  bool   `json:"complete"`
}

// OpenResponse reports a freshly opened block.
type OpenResponse struct {
	Line      int    `json:"line"`
	Block     int    `json:"block"`
	Statement string `json:"statement"`
}

// RuleResponse reports the lines appended by a rule.
type RuleResponse struct {
	Lines      []int    `json:"lines"`
	Statements []string `json:"statements"`
	Complete   bool     `json:"complete"`
}

// TableRow is one truth table assignment.
type TableRow struct {
	Inputs []bool `json:"inputs"`
	Value  bool   `json:"value"`
}

// TableResponse is the truth table of premises entailing the goal.
type TableResponse struct {
	Formula string     `json:"formula"`
	Atoms   []string   `json:"atoms"`
	Rows    []TableRow `json:"rows"`
	Valid   bool       `json:"valid"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Kind    string         `json:"kind,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func (s *Server) handleCreate(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	goal, err := parser.Parse(req.Goal)
	if err != nil {
		writeError(c, err)
		return
	}

	id := store.NewID()
	p := proof.New(goal)
	if req.Name != "" {
		p.SetName(req.Name)
	}

	s.mu.Lock()
	s.sessions[id] = &session{proof: p}
	s.mu.Unlock()
	activeSessions.Inc()

	s.persist(c.Request.Context(), id, p)
	s.logger.Info("proof created", "id", id, "goal", goal.String())
	c.JSON(http.StatusCreated, CreateResponse{ID: id, Goal: goal.String(), Name: req.Name})
}

func (s *Server) handleList(c *gin.Context) {
	s.mu.RLock()
	summaries := make([]ProofSummary, 0, len(s.sessions))
	for id, sess := range s.sessions {
		sess.mu.Lock()
		summaries = append(summaries, ProofSummary{
			ID:       id,
			Name:     sess.proof.Name(),
			Goal:     sess.proof.Goal().String(),
			Complete: sess.proof.IsComplete(),
			Lines:    len(sess.proof.Lines()) - 1,
		})
		sess.mu.Unlock()
	}
	s.mu.RUnlock()

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	c.JSON(http.StatusOK, summaries)
}

func (s *Server) handleGet(c *gin.Context) {
	id := c.Param("id")
	sess, ok := s.session(id)
	if !ok {
		writeError(c, store.ErrNotFound)
		return
	}

	sess.mu.Lock()
	snap, err := sess.proof.Snapshot()
	complete := sess.proof.IsComplete()
	sess.mu.Unlock()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, GetResponse{ID: id, Complete: complete, Proof: snap})
}

func (s *Server) handleDelete(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	_, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		writeError(c, store.ErrNotFound)
		return
	}
	activeSessions.Dec()

	if err := s.store.Delete(c.Request.Context(), id); err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.Error("delete from store failed", "id", id, "error", err)
	}
	s.logger.Info("proof deleted", "id", id)
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePremise(c *gin.Context) {
	var req PremiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	id := c.Param("id")
	sess, ok := s.session(id)
	if !ok {
		writeError(c, store.ErrNotFound)
		return
	}
	stmt, err := parser.Parse(req.Formula)
	if err != nil {
		writeError(c, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	wasComplete := sess.proof.IsComplete()
	index, err := sess.proof.AddPremise(stmt, req.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	if !wasComplete && sess.proof.IsComplete() {
		proofsCompleted.Inc()
	}
	s.persist(c.Request.Context(), id, sess.proof)
	c.JSON(http.StatusOK, LineResponse{
		Line:      index,
		Statement: stmt.String(),
		Complete:  sess.proof.IsComplete(),
	})
}

func (s *Server) handleOpenBlock(c *gin.Context) {
	var req OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	id := c.Param("id")
	sess, ok := s.session(id)
	if !ok {
		writeError(c, store.ErrNotFound)
		return
	}
	assumption, err := parser.Parse(req.Assumption)
	if err != nil {
		writeError(c, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	index, err := sess.proof.OpenBlock(assumption, req.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	s.persist(c.Request.Context(), id, sess.proof)
	c.JSON(http.StatusOK, OpenResponse{
		Line:      index,
		Block:     sess.proof.CurrentBlock(),
		Statement: assumption.String(),
	})
}

func (s *Server) handleCloseBlock(c *gin.Context) {
	id := c.Param("id")
	sess, ok := s.session(id)
	if !ok {
		writeError(c, store.ErrNotFound)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.proof.CloseBlock(); err != nil {
		writeError(c, err)
		return
	}
	s.persist(c.Request.Context(), id, sess.proof)
	c.JSON(http.StatusOK, gin.H{"level": sess.proof.CurrentLevel()})
}

// ruleNames bounds the rule label values reported to Prometheus.
var ruleNames = map[string]bool{
	"reit": true, "andintro": true, "andelim": true,
	"orintro": true, "orelim": true,
	"impintro": true, "impelim": true,
	"notintro": true, "notelim": true,
	"explosion": true,
	"iffintro": true, "iffelim": true,
}

func (s *Server) handleRule(c *gin.Context) {
	rule := c.Param("rule")
	if !ruleNames[rule] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unknown rule %q", rule)})
		return
	}
	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	id := c.Param("id")
	sess, ok := s.session(id)
	if !ok {
		writeError(c, store.ErrNotFound)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	wasComplete := sess.proof.IsComplete()
	indices, err := applyRule(sess.proof, rule, req)
	if err != nil {
		ruleApplications.WithLabelValues(rule, outcomeRejected).Inc()
		s.logger.Debug("rule rejected", "id", id, "rule", rule, "error", err)
		writeError(c, err)
		return
	}
	ruleApplications.WithLabelValues(rule, outcomeApplied).Inc()
	if !wasComplete && sess.proof.IsComplete() {
		proofsCompleted.Inc()
		s.logger.Info("proof completed", "id", id)
	}

	lines := sess.proof.Lines()
	statements := make([]string, len(indices))
	for i, index := range indices {
		statements[i] = lines[index].Statement.String()
	}
	s.persist(c.Request.Context(), id, sess.proof)
	c.JSON(http.StatusOK, RuleResponse{
		Lines:      indices,
		Statements: statements,
		Complete:   sess.proof.IsComplete(),
	})
}

// applyRule dispatches a named rule to the proof. Single-line rules come
// back as a one-element slice so the response shape is uniform.
func applyRule(p *proof.Proof, rule string, req RuleRequest) ([]int, error) {
	needLines := func(n int) error {
		if len(req.Lines) != n {
			return &badArgsError{fmt.Sprintf("%s expects %d line arguments", rule, n)}
		}
		return nil
	}
	needBlocks := func(n int) error {
		if len(req.Blocks) != n {
			return &badArgsError{fmt.Sprintf("%s expects %d block arguments", rule, n)}
		}
		return nil
	}
	needFormula := func() error {
		if req.Formula == "" {
			return &badArgsError{fmt.Sprintf("%s expects a formula", rule)}
		}
		return nil
	}
	single := func(index int, err error) ([]int, error) {
		if err != nil {
			return nil, err
		}
		return []int{index}, nil
	}

	switch rule {
	case "reit":
		if err := needLines(1); err != nil {
			return nil, err
		}
		return single(p.Reiterate(req.Lines[0], req.Comment))
	case "andintro":
		if err := needLines(2); err != nil {
			return nil, err
		}
		return single(p.AndIntro(req.Lines[0], req.Lines[1], req.Comment))
	case "andelim":
		if err := needLines(1); err != nil {
			return nil, err
		}
		return p.AndElim(req.Lines[0], req.Comment)
	case "orintro":
		if err := needFormula(); err != nil {
			return nil, err
		}
		if err := needLines(1); err != nil {
			return nil, err
		}
		stmt, err := parser.Parse(req.Formula)
		if err != nil {
			return nil, err
		}
		return single(p.OrIntro(stmt, req.Lines[0], req.Comment))
	case "orelim":
		if err := needLines(1); err != nil {
			return nil, err
		}
		if len(req.Blocks) == 0 {
			return nil, &badArgsError{"orelim expects at least one block argument"}
		}
		return single(p.OrElim(req.Lines[0], req.Blocks, req.Comment))
	case "impintro":
		if err := needBlocks(1); err != nil {
			return nil, err
		}
		return single(p.ImpliesIntro(req.Blocks[0], req.Comment))
	case "impelim":
		if err := needLines(2); err != nil {
			return nil, err
		}
		return single(p.ImpliesElim(req.Lines[0], req.Lines[1], req.Comment))
	case "notintro":
		if err := needBlocks(1); err != nil {
			return nil, err
		}
		return single(p.NotIntro(req.Blocks[0], req.Comment))
	case "notelim":
		if err := needLines(2); err != nil {
			return nil, err
		}
		return single(p.NotElim(req.Lines[0], req.Lines[1], req.Comment))
	case "explosion":
		if err := needFormula(); err != nil {
			return nil, err
		}
		stmt, err := parser.Parse(req.Formula)
		if err != nil {
			return nil, err
		}
		return single(p.Explosion(stmt, req.Comment))
	case "iffintro":
		if err := needBlocks(2); err != nil {
			return nil, err
		}
		return single(p.IffIntro(req.Blocks[0], req.Blocks[1], req.Comment))
	case "iffelim":
		if err := needLines(2); err != nil {
			return nil, err
		}
		return single(p.IffElim(req.Lines[0], req.Lines[1], req.Comment))
	default:
		return nil, &badArgsError{fmt.Sprintf("unknown rule %q", rule)}
	}
}

func (s *Server) handleRender(c *gin.Context) {
	id := c.Param("id")
	sess, ok := s.session(id)
	if !ok {
		writeError(c, store.ErrNotFound)
		return
	}

	format := c.DefaultQuery("format", "text")
	sess.mu.Lock()
	defer sess.mu.Unlock()
	switch format {
	case "text":
		c.String(http.StatusOK, render.Text(sess.proof, render.TextOptions{}))
	case "markdown":
		c.String(http.StatusOK, render.Markdown(sess.proof))
	case "latex":
		c.String(http.StatusOK, render.LaTeX(sess.proof))
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unknown format %q", format)})
	}
}

func (s *Server) handleTable(c *gin.Context) {
	id := c.Param("id")
	sess, ok := s.session(id)
	if !ok {
		writeError(c, store.ErrNotFound)
		return
	}

	sess.mu.Lock()
	table, err := truthtab.ForArgument(sess.proof.Premises(), sess.proof.Goal())
	sess.mu.Unlock()
	if err != nil {
		if errors.Is(err, truthtab.ErrTooManyAtoms) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: "too_many_atoms"})
			return
		}
		writeError(c, err)
		return
	}

	rows := make([]TableRow, len(table.Rows))
	for i, row := range table.Rows {
		rows[i] = TableRow{Inputs: row.Inputs, Value: row.Value}
	}
	c.JSON(http.StatusOK, TableResponse{
		Formula: table.Formula.String(),
		Atoms:   table.Atoms,
		Rows:    rows,
		Valid:   table.Valid(),
	})
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleReadyz(c *gin.Context) {
	if _, err := s.store.List(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
