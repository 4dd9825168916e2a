package state

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxRollingContextChars caps the rolling context buffer. Appends that
// would exceed it drop the oldest (leftmost) characters.
const MaxRollingContextChars = 1000

// RoleID identifies one processing role. The set is closed.
type RoleID string

const (
	RoleText        RoleID = "text"
	RoleVision      RoleID = "vision"
	RoleCoordinator RoleID = "coordinator"
)

// Decision is the coordinator's classification of one turn. It is
// recorded for observability only; no decision persists across turns.
type Decision string

const (
	DecisionTextOnly       Decision = "text_only"
	DecisionVisionPrimary  Decision = "vision_primary"
	DecisionVisionWithText Decision = "vision_with_text"
	DecisionError          Decision = "error"
)

// Interaction is one completed turn. Immutable once appended.
type Interaction struct {
	Seq       int       `json:"seq"`
	UserText  string    `json:"user_text"`
	Response  string    `json:"response"`
	Roles     []RoleID  `json:"roles"`
	HadImage  bool      `json:"had_image"`
	CreatedAt time.Time `json:"created_at"`
}

// ImageHandle is an already-decoded image. Decoding and normalization
// belong to the caller; the session only stores and hands it back.
type ImageHandle struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	MIME string `json:"mime"`
	Data []byte `json:"-"`
}

type UploadedImage struct {
	Image      ImageHandle `json:"image"`
	UploadedAt time.Time   `json:"uploaded_at"`
}

// RoleState is the per-role status record. LastDecision is only
// meaningful for the coordinator.
type RoleState struct {
	Active       bool     `json:"active"`
	LastResponse string   `json:"last_response,omitempty"`
	LastDecision Decision `json:"last_decision,omitempty"`
}

// RolePatch merge-updates a RoleState: only non-nil fields apply.
type RolePatch struct {
	Active       *bool
	LastResponse *string
	LastDecision *Decision
}

// SessionState holds everything one session owns: the rolling context,
// the append-only interaction log, the uploaded image list, and the
// per-role status records. It is confined to one logical caller; the
// hosting layer serializes turns, so no locking happens here.
type SessionState struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Context      string                `json:"context"`
	Interactions []Interaction         `json:"interactions,omitempty"`
	Images       []UploadedImage       `json:"images,omitempty"`
	Roles        map[RoleID]*RoleState `json:"roles"`
}

var ErrInvalidSession = errors.New("session id is empty")

func NewSessionState(sessionID string, now time.Time) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
		Roles: map[RoleID]*RoleState{
			RoleText:        {Active: true},
			RoleVision:      {Active: true},
			RoleCoordinator: {Active: true},
		},
	}
}

func (s *SessionState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

/* ----------------------------- Rolling context ---------------------------- */

// AppendContext concatenates new content with a newline separator, then
// keeps only the trailing MaxRollingContextChars characters. The cap
// counts runes, not bytes, so truncation never splits a multi-byte
// character.
func (s *SessionState) AppendContext(text string) {
	if text == "" {
		return
	}
	if s.Context == "" {
		s.Context = text
	} else {
		s.Context += "\n" + text
	}
	if runes := []rune(s.Context); len(runes) > MaxRollingContextChars {
		s.Context = string(runes[len(runes)-MaxRollingContextChars:])
	}
}

func (s *SessionState) RollingContext() string {
	return s.Context
}

/* ----------------------------- Interaction log ---------------------------- */

// AddInteraction appends one completed turn and returns the stored
// record. Seq follows insertion order.
func (s *SessionState) AddInteraction(userText, response string, roles []RoleID, hadImage bool, now time.Time) Interaction {
	rec := Interaction{
		Seq:       len(s.Interactions) + 1,
		UserText:  userText,
		Response:  response,
		Roles:     append([]RoleID(nil), roles...),
		HadImage:  hadImage,
		CreatedAt: now.UTC(),
	}
	s.Interactions = append(s.Interactions, rec)
	s.Touch(now)
	return rec
}

// RecentHistory returns at most n records in insertion order, the most
// recently added record last.
func (s *SessionState) RecentHistory(n int) []Interaction {
	if n <= 0 || len(s.Interactions) == 0 {
		return nil
	}
	start := len(s.Interactions) - n
	if start < 0 {
		start = 0
	}
	return append([]Interaction(nil), s.Interactions[start:]...)
}

/* ----------------------------- Uploaded images ---------------------------- */

// AddUploadedImage appends an image handle; the latest upload is always
// the tail. Handles without an ID get one assigned.
func (s *SessionState) AddUploadedImage(img ImageHandle, now time.Time) ImageHandle {
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	s.Images = append(s.Images, UploadedImage{
		Image:      img,
		UploadedAt: now.UTC(),
	})
	s.Touch(now)
	return img
}

// LatestImage returns the most recently uploaded image, if any.
func (s *SessionState) LatestImage() (ImageHandle, bool) {
	if len(s.Images) == 0 {
		return ImageHandle{}, false
	}
	return s.Images[len(s.Images)-1].Image, true
}

/* ------------------------------- Role states ------------------------------ */

// UpdateRoleState merge-updates the role's record; absent roles are
// created so a patch never silently disappears.
func (s *SessionState) UpdateRoleState(role RoleID, patch RolePatch) {
	if s.Roles == nil {
		s.Roles = make(map[RoleID]*RoleState, 3)
	}
	rs, ok := s.Roles[role]
	if !ok {
		rs = &RoleState{}
		s.Roles[role] = rs
	}
	if patch.Active != nil {
		rs.Active = *patch.Active
	}
	if patch.LastResponse != nil {
		rs.LastResponse = *patch.LastResponse
	}
	if patch.LastDecision != nil {
		rs.LastDecision = *patch.LastDecision
	}
}

// RoleStateFor returns a copy of the role's record, or an empty record
// for unknown roles.
func (s *SessionState) RoleStateFor(role RoleID) RoleState {
	if s.Roles == nil {
		return RoleState{}
	}
	rs, ok := s.Roles[role]
	if !ok || rs == nil {
		return RoleState{}
	}
	return *rs
}

/* --------------------------------- Reset ---------------------------------- */

// ClearAll empties the interaction log, the rolling context, and the
// uploaded image list in one step. Role-state records survive a reset.
func (s *SessionState) ClearAll(now time.Time) {
	s.Interactions = nil
	s.Context = ""
	s.Images = nil
	s.Touch(now)
}

func (s *SessionState) Validate() error {
	if s.SessionID == "" {
		return ErrInvalidSession
	}
	if utf8.RuneCountInString(s.Context) > MaxRollingContextChars {
		return fmt.Errorf("rolling context exceeds %d chars", MaxRollingContextChars)
	}
	for i, rec := range s.Interactions {
		if rec.Seq != i+1 {
			return fmt.Errorf("interaction log out of order at index %d", i)
		}
	}
	return nil
}

/* ------------------------- Convenience functions -------------------------- */

func BoolPtr(v bool) *bool             { return &v }
func StringPtr(v string) *string       { return &v }
func DecisionPtr(v Decision) *Decision { return &v }

// NewImage builds an ImageHandle with a fresh ID.
func NewImage(name, mime string, data []byte) ImageHandle {
	return ImageHandle{ID: uuid.NewString(), Name: name, MIME: mime, Data: data}
}
