package model

// LogicOperator joins conditions of a set
type LogicOperator string

const (
	LogicAnd LogicOperator = "AND"
	LogicOr  LogicOperator = "OR"
)

// Skip targets that never point at a question or block
const (
	SkipToNext = "next"
	SkipToEnd  = "end"

	// BlockTargetPrefix marks a skip target that names a block id
	BlockTargetPrefix = "block:"
)

// Condition compares the answer of an earlier question against a value.
// QuestionID holds the display qid of the source question, not its id.
type Condition struct {
	ID          string `json:"id" bson:"id"`
	QuestionID  string `json:"questionId" bson:"questionId"`
	Operator    string `json:"operator" bson:"operator"` // equals, not_equals, greater_than, less_than, is_empty, is_not_empty, contains
	Value       string `json:"value,omitempty" bson:"value,omitempty"`
	IsConfirmed bool   `json:"isConfirmed,omitempty" bson:"isConfirmed,omitempty"`
}

// LogicSet groups conditions under one operator. Unconfirmed sets are drafts.
type LogicSet struct {
	ID          string        `json:"id" bson:"id"`
	Operator    LogicOperator `json:"operator" bson:"operator"`
	Conditions  []Condition   `json:"conditions" bson:"conditions"`
	IsConfirmed bool          `json:"isConfirmed" bson:"isConfirmed"`
}

// SkipLogicType selects between one target and per choice targets
type SkipLogicType string

const (
	SkipSimple    SkipLogicType = "simple"
	SkipPerChoice SkipLogicType = "per_choice"
)

// SkipRule sends respondents choosing ChoiceID to SkipTo
type SkipRule struct {
	ChoiceID    string `json:"choiceId" bson:"choiceId"`
	SkipTo      string `json:"skipTo" bson:"skipTo"`
	IsConfirmed bool   `json:"isConfirmed,omitempty" bson:"isConfirmed,omitempty"`
}

// SkipLogic sends respondents somewhere other than the next question
type SkipLogic struct {
	Type        SkipLogicType `json:"type" bson:"type"`
	SkipTo      string        `json:"skipTo,omitempty" bson:"skipTo,omitempty"` // simple only
	Rules       []SkipRule    `json:"rules,omitempty" bson:"rules,omitempty"`   // per_choice only
	IsConfirmed bool          `json:"isConfirmed,omitempty" bson:"isConfirmed,omitempty"`
}

// Branch is one named path of branching logic
type Branch struct {
	ID                    string        `json:"id" bson:"id"`
	Operator              LogicOperator `json:"operator" bson:"operator"`
	Conditions            []Condition   `json:"conditions" bson:"conditions"`
	ThenSkipTo            string        `json:"thenSkipTo,omitempty" bson:"thenSkipTo,omitempty"`
	ThenSkipToIsConfirmed bool          `json:"thenSkipToIsConfirmed,omitempty" bson:"thenSkipToIsConfirmed,omitempty"`
}

// BranchingLogic evaluates branches in order and falls back to OtherwiseSkipTo
type BranchingLogic struct {
	Branches             []Branch `json:"branches" bson:"branches"`
	OtherwiseSkipTo      string   `json:"otherwiseSkipTo,omitempty" bson:"otherwiseSkipTo,omitempty"`
	OtherwiseIsConfirmed bool     `json:"otherwiseIsConfirmed,omitempty" bson:"otherwiseIsConfirmed,omitempty"`
	IsConfirmed          bool     `json:"isConfirmed,omitempty" bson:"isConfirmed,omitempty"`
}

// DisplayLogic shows a question only when its conditions hold
type DisplayLogic struct {
	Operator    LogicOperator `json:"operator" bson:"operator"`
	Conditions  []Condition   `json:"conditions" bson:"conditions"`
	LogicSets   []LogicSet    `json:"logicSets,omitempty" bson:"logicSets,omitempty"`
	IsConfirmed bool          `json:"isConfirmed,omitempty" bson:"isConfirmed,omitempty"`
}

// ChoiceDisplayRule shows or hides one choice of the owning question
type ChoiceDisplayRule struct {
	TargetChoiceID string        `json:"targetChoiceId" bson:"targetChoiceId"`
	Action         string        `json:"action" bson:"action"` // show, hide
	Operator       LogicOperator `json:"operator" bson:"operator"`
	Conditions     []Condition   `json:"conditions" bson:"conditions"`
	IsConfirmed    bool          `json:"isConfirmed,omitempty" bson:"isConfirmed,omitempty"`
}

// ChoiceDisplayLogic holds the choice level display rules of a question
type ChoiceDisplayLogic struct {
	Rules []ChoiceDisplayRule `json:"rules" bson:"rules"`
}

// ChoiceEliminationLogic carries choices forward from another question
type ChoiceEliminationLogic struct {
	SourceQuestionID string `json:"sourceQuestionId" bson:"sourceQuestionId"` // qid
	Mode             string `json:"mode" bson:"mode"`                         // selected, not_selected
	IsConfirmed      bool   `json:"isConfirmed,omitempty" bson:"isConfirmed,omitempty"`
}

func cloneConditions(in []Condition) []Condition {
	if in == nil {
		return nil
	}
	return append([]Condition(nil), in...)
}

// Clone returns a deep copy
func (l *LogicSet) Clone() *LogicSet {
	if l == nil {
		return nil
	}
	out := *l
	out.Conditions = cloneConditions(l.Conditions)
	return &out
}

// Clone returns a deep copy
func (l *SkipLogic) Clone() *SkipLogic {
	if l == nil {
		return nil
	}
	out := *l
	if l.Rules != nil {
		out.Rules = append([]SkipRule(nil), l.Rules...)
	}
	return &out
}

// Clone returns a deep copy
func (l *BranchingLogic) Clone() *BranchingLogic {
	if l == nil {
		return nil
	}
	out := *l
	if l.Branches != nil {
		out.Branches = make([]Branch, len(l.Branches))
		for i, b := range l.Branches {
			b.Conditions = cloneConditions(b.Conditions)
			out.Branches[i] = b
		}
	}
	return &out
}

// Clone returns a deep copy
func (l *DisplayLogic) Clone() *DisplayLogic {
	if l == nil {
		return nil
	}
	out := *l
	out.Conditions = cloneConditions(l.Conditions)
	if l.LogicSets != nil {
		out.LogicSets = make([]LogicSet, len(l.LogicSets))
		for i := range l.LogicSets {
			out.LogicSets[i] = *l.LogicSets[i].Clone()
		}
	}
	return &out
}

// Clone returns a deep copy
func (l *ChoiceDisplayLogic) Clone() *ChoiceDisplayLogic {
	if l == nil {
		return nil
	}
	out := *l
	if l.Rules != nil {
		out.Rules = make([]ChoiceDisplayRule, len(l.Rules))
		for i, r := range l.Rules {
			r.Conditions = cloneConditions(r.Conditions)
			out.Rules[i] = r
		}
	}
	return &out
}

// Clone returns a deep copy
func (l *ChoiceEliminationLogic) Clone() *ChoiceEliminationLogic {
	if l == nil {
		return nil
	}
	out := *l
	return &out
}

// AllConditions returns every condition of the display logic, including
// those nested in logic sets
func (l *DisplayLogic) AllConditions() []Condition {
	if l == nil {
		return nil
	}
	out := append([]Condition(nil), l.Conditions...)
	for _, set := range l.LogicSets {
		out = append(out, set.Conditions...)
	}
	return out
}
