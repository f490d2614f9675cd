package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeRadio         QuestionType = "Radio"
	QuestionTypeCheckbox      QuestionType = "Checkbox"
	QuestionTypeDropDownList  QuestionType = "DropDownList"
	QuestionTypeTextEntry     QuestionType = "TextEntry"
	QuestionTypeNumericAnswer QuestionType = "NumericAnswer"
	QuestionTypeChoiceGrid    QuestionType = "ChoiceGrid"
	QuestionTypeDescription   QuestionType = "Description" // display only, never paginated
	QuestionTypePageBreak     QuestionType = "PageBreak"   // structural marker
)

// IsInteractive reports whether a respondent answers this type.
// Pagination puts at most one interactive question per page in one-per-page mode.
func (t QuestionType) IsInteractive() bool {
	return t != QuestionTypePageBreak && t != QuestionTypeDescription
}

// IsAutoAdvanceEligible reports whether a single interaction completes the question
func (t QuestionType) IsAutoAdvanceEligible() bool {
	return t == QuestionTypeRadio || t == QuestionTypeChoiceGrid
}

// HasChoices reports whether the type carries a choice list
func (t QuestionType) HasChoices() bool {
	switch t {
	case QuestionTypeRadio, QuestionTypeCheckbox, QuestionTypeDropDownList, QuestionTypeChoiceGrid:
		return true
	}
	return false
}

// Choice is a selectable answer owned by a question
type Choice struct {
	ID             string `json:"id" bson:"id"`
	Text           string `json:"text" bson:"text"`
	Visible        *bool  `json:"visible,omitempty" bson:"visible,omitempty"` // nil = visible
	AllowTextEntry bool   `json:"allowTextEntry,omitempty" bson:"allowTextEntry,omitempty"`
}

// IsVisible reports the effective visibility of the choice
func (c Choice) IsVisible() bool {
	return c.Visible == nil || *c.Visible
}

// Clone returns a deep copy of the choice
func (c Choice) Clone() Choice {
	out := c
	if c.Visible != nil {
		v := *c.Visible
		out.Visible = &v
	}
	return out
}

// Question is a single survey item owned by exactly one block
type Question struct {
	ID     string       `json:"id" bson:"id"`
	QID    string       `json:"qid,omitempty" bson:"qid,omitempty"` // display id, e.g. "Q3"
	Type   QuestionType `json:"type" bson:"type"`
	Text   string       `json:"text" bson:"text"`
	Label  string       `json:"label,omitempty" bson:"label,omitempty"` // Description only

	Choices     []Choice `json:"choices,omitempty" bson:"choices,omitempty"`
	ScalePoints []Choice `json:"scalePoints,omitempty" bson:"scalePoints,omitempty"` // ChoiceGrid columns

	SkipLogic              *SkipLogic              `json:"skipLogic,omitempty" bson:"skipLogic,omitempty"`
	BranchingLogic         *BranchingLogic         `json:"branchingLogic,omitempty" bson:"branchingLogic,omitempty"`
	DisplayLogic           *DisplayLogic           `json:"displayLogic,omitempty" bson:"displayLogic,omitempty"`
	ChoiceDisplayLogic     *ChoiceDisplayLogic     `json:"choiceDisplayLogic,omitempty" bson:"choiceDisplayLogic,omitempty"`
	ChoiceEliminationLogic *ChoiceEliminationLogic `json:"choiceEliminationLogic,omitempty" bson:"choiceEliminationLogic,omitempty"`

	IsHidden       bool `json:"isHidden,omitempty" bson:"isHidden,omitempty"`
	ForceResponse  bool `json:"forceResponse,omitempty" bson:"forceResponse,omitempty"`
	IsAutomatic    bool `json:"isAutomatic,omitempty" bson:"isAutomatic,omitempty"` // PageBreak only
	HideBackButton bool `json:"hideBackButton,omitempty" bson:"hideBackButton,omitempty"`
	AutoAdvance    bool `json:"autoAdvance,omitempty" bson:"autoAdvance,omitempty"`
}

// Clone returns a deep copy of the question, keeping every id
func (q Question) Clone() Question {
	out := q
	out.Choices = cloneChoices(q.Choices)
	out.ScalePoints = cloneChoices(q.ScalePoints)
	out.SkipLogic = q.SkipLogic.Clone()
	out.BranchingLogic = q.BranchingLogic.Clone()
	out.DisplayLogic = q.DisplayLogic.Clone()
	out.ChoiceDisplayLogic = q.ChoiceDisplayLogic.Clone()
	out.ChoiceEliminationLogic = q.ChoiceEliminationLogic.Clone()
	return out
}

func cloneChoices(in []Choice) []Choice {
	if in == nil {
		return nil
	}
	out := make([]Choice, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
