package proof

import (
	"encoding/json"
	"fmt"

	"github.com/fitchkit/fitch/internal/prop"
)

// Snapshot is the JSON wire form of a proof: everything needed to persist a
// session and restore it with FromSnapshot. Statements are stored in the
// tagged-object formula encoding.
type Snapshot struct {
	Name     string            `json:"name,omitempty"`
	Goal     json.RawMessage   `json:"goal"`
	Premises []json.RawMessage `json:"premises,omitempty"`
	Status   string            `json:"status"`
	Lines    []LineSnapshot    `json:"lines"`
	Blocks   []BlockSnapshot   `json:"blocks"`
	Open     []int             `json:"open"`
}

// LineSnapshot mirrors Line with the statement encoded and the rule tag
// carried by name.
type LineSnapshot struct {
	Statement   json.RawMessage `json:"statement"`
	Level       int             `json:"level"`
	Block       int             `json:"block"`
	Rule        string          `json:"rule"`
	CitedLines  []int           `json:"cited_lines,omitempty"`
	CitedBlocks []int           `json:"cited_blocks,omitempty"`
	Comment     string          `json:"comment,omitempty"`
}

// BlockSnapshot mirrors Block. End is meaningful only when Closed is set.
type BlockSnapshot struct {
	ID     int  `json:"id"`
	Level  int  `json:"level"`
	Start  int  `json:"start"`
	End    int  `json:"end"`
	Closed bool `json:"closed"`
}

// Snapshot captures the full proof state.
func (p *Proof) Snapshot() (*Snapshot, error) {
	goal, err := prop.MarshalJSON(p.goal)
	if err != nil {
		return nil, fmt.Errorf("proof: snapshot goal: %w", err)
	}
	snap := &Snapshot{
		Name:   p.name,
		Goal:   goal,
		Status: p.status.String(),
		Open:   append([]int(nil), p.led.open...),
	}
	for i, premise := range p.premises {
		data, err := prop.MarshalJSON(premise)
		if err != nil {
			return nil, fmt.Errorf("proof: snapshot premise %d: %w", i, err)
		}
		snap.Premises = append(snap.Premises, data)
	}
	for i, line := range p.led.lines {
		stmt, err := prop.MarshalJSON(line.Statement)
		if err != nil {
			return nil, fmt.Errorf("proof: snapshot line %d: %w", i, err)
		}
		snap.Lines = append(snap.Lines, LineSnapshot{
			Statement:   stmt,
			Level:       line.Level,
			Block:       line.BlockID,
			Rule:        line.Rule.String(),
			CitedLines:  append([]int(nil), line.CitedLines...),
			CitedBlocks: append([]int(nil), line.CitedBlocks...),
			Comment:     line.Comment,
		})
	}
	for _, blk := range p.led.blocks {
		snap.Blocks = append(snap.Blocks, BlockSnapshot(blk))
	}
	return snap, nil
}

// FromSnapshot restores a proof. The snapshot's structural invariants are
// re-validated before any state is built, so a hand-edited or truncated
// snapshot is rejected rather than producing a proof that misbehaves later.
func FromSnapshot(s *Snapshot) (*Proof, error) {
	if s == nil {
		return nil, fmt.Errorf("proof: nil snapshot")
	}
	goal, err := prop.UnmarshalJSON(s.Goal)
	if err != nil {
		return nil, fmt.Errorf("proof: snapshot goal: %w", err)
	}
	var status Status
	switch s.Status {
	case "open":
		status = StatusOpen
	case "complete":
		status = StatusComplete
	default:
		return nil, fmt.Errorf("proof: snapshot status %q unknown", s.Status)
	}

	led, err := rebuildLedger(s)
	if err != nil {
		return nil, err
	}
	if !prop.Equal(led.lines[0].Statement, goal) {
		return nil, fmt.Errorf("proof: snapshot line 0 does not restate the goal")
	}

	premises, err := rebuildPremises(s, led)
	if err != nil {
		return nil, err
	}

	complete := false
	for _, line := range led.lines[1:] {
		if line.Level == 0 && prop.Equal(line.Statement, goal) {
			complete = true
			break
		}
	}
	if complete != (status == StatusComplete) {
		return nil, fmt.Errorf("proof: snapshot status %q contradicts its lines", s.Status)
	}

	return &Proof{
		name:     s.Name,
		goal:     goal,
		premises: premises,
		led:      led,
		status:   status,
	}, nil
}

func rebuildLedger(s *Snapshot) (*ledger, error) {
	if len(s.Lines) == 0 {
		return nil, fmt.Errorf("proof: snapshot has no goal line")
	}
	if len(s.Blocks) == 0 || s.Blocks[0].ID != 0 || s.Blocks[0].Level != 0 || s.Blocks[0].Closed {
		return nil, fmt.Errorf("proof: snapshot root block malformed")
	}

	led := &ledger{}
	for i, blk := range s.Blocks {
		if blk.ID != i {
			return nil, fmt.Errorf("proof: snapshot block %d carries id %d", i, blk.ID)
		}
		if blk.Start < 0 || blk.Start >= len(s.Lines) {
			return nil, fmt.Errorf("proof: snapshot block %d starts at line %d of %d", i, blk.Start, len(s.Lines))
		}
		if blk.Closed && (blk.End < blk.Start || blk.End >= len(s.Lines)) {
			return nil, fmt.Errorf("proof: snapshot block %d ends at line %d of %d", i, blk.End, len(s.Lines))
		}
		led.blocks = append(led.blocks, Block(blk))
	}

	for i, line := range s.Lines {
		stmt, err := prop.UnmarshalJSON(line.Statement)
		if err != nil {
			return nil, fmt.Errorf("proof: snapshot line %d: %w", i, err)
		}
		rule, ok := ruleTagFromName(line.Rule)
		if !ok {
			return nil, fmt.Errorf("proof: snapshot line %d cites unknown rule %q", i, line.Rule)
		}
		if i == 0 && rule != RuleGoal {
			return nil, fmt.Errorf("proof: snapshot line 0 must be the goal declaration")
		}
		if i > 0 && rule == RuleGoal {
			return nil, fmt.Errorf("proof: snapshot line %d repeats the goal declaration", i)
		}
		if line.Block < 0 || line.Block >= len(led.blocks) {
			return nil, fmt.Errorf("proof: snapshot line %d sits in unknown block %d", i, line.Block)
		}
		if line.Level != led.blocks[line.Block].Level {
			return nil, fmt.Errorf("proof: snapshot line %d level %d disagrees with block %d", i, line.Level, line.Block)
		}
		for _, cited := range line.CitedLines {
			if cited < 1 || cited >= i {
				return nil, fmt.Errorf("proof: snapshot line %d cites line %d", i, cited)
			}
		}
		for _, cited := range line.CitedBlocks {
			if cited < 1 || cited >= len(led.blocks) {
				return nil, fmt.Errorf("proof: snapshot line %d cites block %d", i, cited)
			}
		}
		led.lines = append(led.lines, Line{
			Statement:   stmt,
			Level:       line.Level,
			BlockID:     line.Block,
			Rule:        rule,
			CitedLines:  append([]int(nil), line.CitedLines...),
			CitedBlocks: append([]int(nil), line.CitedBlocks...),
			Comment:     line.Comment,
		})
	}

	// The open stack must be the ancestor chain: root first, one level per
	// entry, every member still open.
	if len(s.Open) == 0 || s.Open[0] != 0 {
		return nil, fmt.Errorf("proof: snapshot open stack must start at the root block")
	}
	for depth, id := range s.Open {
		if id < 0 || id >= len(led.blocks) {
			return nil, fmt.Errorf("proof: snapshot open stack names unknown block %d", id)
		}
		if led.blocks[id].Closed {
			return nil, fmt.Errorf("proof: snapshot open stack names closed block %d", id)
		}
		if led.blocks[id].Level != depth {
			return nil, fmt.Errorf("proof: snapshot open stack block %d at depth %d has level %d", id, depth, led.blocks[id].Level)
		}
	}
	led.open = append([]int(nil), s.Open...)
	return led, nil
}

// rebuildPremises decodes the premise list and checks it against the
// premise-tagged lines, which must be exactly lines 1..n.
func rebuildPremises(s *Snapshot, led *ledger) ([]prop.Prop, error) {
	premises := make([]prop.Prop, 0, len(s.Premises))
	for i, data := range s.Premises {
		premise, err := prop.UnmarshalJSON(data)
		if err != nil {
			return nil, fmt.Errorf("proof: snapshot premise %d: %w", i, err)
		}
		premises = append(premises, premise)
	}
	tagged := 0
	for i, line := range led.lines[1:] {
		if line.Rule != RulePremise {
			continue
		}
		tagged++
		if i+1 > len(premises) || !prop.Equal(line.Statement, premises[i]) {
			return nil, fmt.Errorf("proof: snapshot premise list disagrees with line %d", i+1)
		}
	}
	if tagged != len(premises) {
		return nil, fmt.Errorf("proof: snapshot carries %d premises but %d premise lines", len(premises), tagged)
	}
	return premises, nil
}
