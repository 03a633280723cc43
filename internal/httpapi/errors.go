package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitchkit/fitch/internal/parser"
	"github.com/fitchkit/fitch/internal/proof"
	"github.com/fitchkit/fitch/internal/store"
)

// badArgsError marks malformed rule arguments, reported as 400 rather
// than 422.
type badArgsError struct {
	msg string
}

func (e *badArgsError) Error() string { return e.msg }

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), errorBody(err))
}

func statusFor(err error) int {
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadRequest
	}
	var badArgs *badArgsError
	if errors.As(err, &badArgs) {
		return http.StatusBadRequest
	}
	var complete *proof.ProofAlreadyComplete
	if errors.As(err, &complete) {
		return http.StatusConflict
	}
	var perr proof.ProofError
	if errors.As(err, &perr) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func errorBody(err error) ErrorResponse {
	body := ErrorResponse{Error: err.Error()}

	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		body.Kind = "parse_error"
		body.Details = map[string]any{"column": parseErr.Col}
		return body
	}
	var perr proof.ProofError
	if errors.As(err, &perr) {
		body.Kind = perr.ErrorKind()
		body.Details = errorDetails(perr)
	}
	return body
}

// errorDetails flattens the typed fields of a rule violation for clients
// that want more than the message text.
func errorDetails(err proof.ProofError) map[string]any {
	switch e := err.(type) {
	case *proof.NoSuchLine:
		return map[string]any{"line": e.Line}
	case *proof.BlockNotFound:
		return map[string]any{"block": e.Block}
	case *proof.BlockNotClosed:
		return map[string]any{"block": e.Block}
	case *proof.BlockClosed:
		return map[string]any{"block": e.Block}
	case *proof.ScopeError:
		d := map[string]any{"level": e.Level, "current_level": e.CurrentLevel}
		if e.Line >= 0 {
			d["line"] = e.Line
		} else {
			d["block"] = e.Block
		}
		return d
	case *proof.NotAssumption:
		return map[string]any{"line": e.Line}
	case *proof.NotConjunction:
		return map[string]any{"line": e.Line, "statement": e.Statement.String()}
	case *proof.NotDisjunction:
		return map[string]any{"line": e.Line, "statement": e.Statement.String()}
	case *proof.NotAntecedent:
		return map[string]any{"antecedent": e.Antecedent.String(), "implication": e.Implication.String()}
	case *proof.NotEquivalence:
		return map[string]any{"side": e.Side.String(), "equivalence": e.Equivalence.String()}
	case *proof.NotContradiction:
		return map[string]any{"first": e.First, "second": e.Second}
	case *proof.NotFalse:
		return map[string]any{"line": e.Line, "statement": e.Statement.String()}
	case *proof.DisjunctNotFound:
		return map[string]any{"disjunct": e.Disjunct.String(), "disjunction": e.Disjunction.String(), "line": e.Line}
	case *proof.AssumptionNotFound:
		return map[string]any{"assumption": e.Assumption.String(), "disjunction": e.Disjunction.String()}
	case *proof.ConclusionsNotTheSame:
		return map[string]any{"conclusion": e.Conclusion.String(), "non_matching": e.NonMatching.String()}
	case *proof.PremiseNotAtStart:
		return map[string]any{"premise": e.Premise.String()}
	default:
		return nil
	}
}
