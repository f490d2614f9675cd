package service

// Editor push message types
const (
	MsgSurveyUpdated = "survey_updated"
	MsgLogicWarning  = "logic_warning"
	MsgSurveyDeleted = "survey_deleted"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSurvey(surveyID string, msgType string, payload interface{})
	DisconnectSurvey(surveyID string)
}
