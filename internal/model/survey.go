package model

import "time"

// PagingMode controls how the pagination pass lays out questions
type PagingMode string

const (
	PagingOnePerPage   PagingMode = "one-per-page"
	PagingMultiPerPage PagingMode = "multi-per-page"
)

// Survey is the root aggregate edited by the engine. Block order is
// document order and defines which questions logic may reference.
type Survey struct {
	Title                      string     `json:"title" bson:"title"`
	DisplayTitle               string     `json:"displayTitle,omitempty" bson:"displayTitle,omitempty"`
	Blocks                     []Block    `json:"blocks" bson:"blocks"`
	PagingMode                 PagingMode `json:"pagingMode" bson:"pagingMode"`
	GlobalAutoAdvance          bool       `json:"globalAutoAdvance,omitempty" bson:"globalAutoAdvance,omitempty"`
	LastLogicValidationMessage string     `json:"lastLogicValidationMessage,omitempty" bson:"lastLogicValidationMessage,omitempty"`
}

// Randomization configures question order shuffling inside a block
type Randomization struct {
	Enabled         bool `json:"enabled" bson:"enabled"`
	QuestionsToShow int  `json:"questionsToShow,omitempty" bson:"questionsToShow,omitempty"` // 0 = all
}

// Block is an ordered container of questions
type Block struct {
	ID                    string         `json:"id" bson:"id"`
	BID                   string         `json:"bid" bson:"bid"` // display id, e.g. "BL1"
	Title                 string         `json:"title" bson:"title"`
	Questions             []Question     `json:"questions" bson:"questions"`
	AutomaticPageBreaks   bool           `json:"automaticPageBreaks,omitempty" bson:"automaticPageBreaks,omitempty"`
	LoopingEnabled        bool           `json:"loopingEnabled,omitempty" bson:"loopingEnabled,omitempty"`
	AutoAdvance           bool           `json:"autoAdvance,omitempty" bson:"autoAdvance,omitempty"`
	HideBackButton        bool           `json:"hideBackButton,omitempty" bson:"hideBackButton,omitempty"`
	ContinueTo            string         `json:"continueTo,omitempty" bson:"continueTo,omitempty"`
	QuestionRandomization *Randomization `json:"questionRandomization,omitempty" bson:"questionRandomization,omitempty"`
}

// SurveyDocument is a persisted survey together with its storage metadata
type SurveyDocument struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Survey    Survey    `json:"survey" bson:"survey"`
	Version   int64     `json:"version" bson:"version"` // bumped on every saved transition
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Clone returns a deep copy of the survey
func (s *Survey) Clone() *Survey {
	if s == nil {
		return nil
	}
	out := *s
	if s.Blocks != nil {
		out.Blocks = make([]Block, len(s.Blocks))
		for i := range s.Blocks {
			out.Blocks[i] = s.Blocks[i].Clone()
		}
	}
	return &out
}

// Clone returns a deep copy of the block
func (b Block) Clone() Block {
	out := b
	if b.Questions != nil {
		out.Questions = make([]Question, len(b.Questions))
		for i := range b.Questions {
			out.Questions[i] = b.Questions[i].Clone()
		}
	}
	if b.QuestionRandomization != nil {
		r := *b.QuestionRandomization
		out.QuestionRandomization = &r
	}
	return out
}

// BlockIndex returns the position of the block with the given id, or -1
func (s *Survey) BlockIndex(blockID string) int {
	for i := range s.Blocks {
		if s.Blocks[i].ID == blockID {
			return i
		}
	}
	return -1
}

// FindQuestion returns the block and question positions of a question id
func (s *Survey) FindQuestion(questionID string) (blockIdx, questionIdx int, ok bool) {
	for bi := range s.Blocks {
		for qi := range s.Blocks[bi].Questions {
			if s.Blocks[bi].Questions[qi].ID == questionID {
				return bi, qi, true
			}
		}
	}
	return -1, -1, false
}

// QuestionByQID resolves a display qid to its question
func (s *Survey) QuestionByQID(qid string) (*Question, bool) {
	for bi := range s.Blocks {
		for qi := range s.Blocks[bi].Questions {
			if s.Blocks[bi].Questions[qi].QID == qid {
				return &s.Blocks[bi].Questions[qi], true
			}
		}
	}
	return nil, false
}

// LastContentQuestion returns the index of the last non page break question
func (b *Block) LastContentQuestion() int {
	for i := len(b.Questions) - 1; i >= 0; i-- {
		if b.Questions[i].Type != QuestionTypePageBreak {
			return i
		}
	}
	return -1
}

// ContentCount counts the questions of a block that are not page breaks
func (b *Block) ContentCount() int {
	n := 0
	for i := range b.Questions {
		if b.Questions[i].Type != QuestionTypePageBreak {
			n++
		}
	}
	return n
}
