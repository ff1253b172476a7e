package events

const (
	EventTypeVisitorCreated  = "visitor.created"
	EventTypeVisitorApproved = "visitor.approved"
)

type VisitorCreatedEvent struct {
	Envelope
	VisitorID int64  `json:"visitor_id"`
	FullName  string `json:"full_name"`
	CreatedBy string `json:"created_by"`
	HasPhoto  bool   `json:"has_photo"`
}

func NewVisitorCreatedEvent(visitorID int64, fullName, createdBy string, hasPhoto bool) *VisitorCreatedEvent {
	return &VisitorCreatedEvent{
		Envelope: newEnvelope(EventTypeVisitorCreated, map[string]interface{}{
			"visitor_id": visitorID,
			"full_name":  fullName,
			"created_by": createdBy,
			"has_photo":  hasPhoto,
		}),
		VisitorID: visitorID,
		FullName:  fullName,
		CreatedBy: createdBy,
		HasPhoto:  hasPhoto,
	}
}

type VisitorApprovedEvent struct {
	Envelope
	VisitorID  int64  `json:"visitor_id"`
	ApprovedBy string `json:"approved_by"`
}

func NewVisitorApprovedEvent(visitorID int64, approvedBy string) *VisitorApprovedEvent {
	return &VisitorApprovedEvent{
		Envelope: newEnvelope(EventTypeVisitorApproved, map[string]interface{}{
			"visitor_id":  visitorID,
			"approved_by": approvedBy,
		}),
		VisitorID:  visitorID,
		ApprovedBy: approvedBy,
	}
}
