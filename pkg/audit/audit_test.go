package audit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	event := GrantEvent{
		Actor:      "alice",
		RoleID:     "analyst",
		ResourceID: "fin-ledger",
		Level:      "write",
		Operation:  "set",
	}

	logger.Log(event)

	output := buf.String()

	// Check RFC5424 format components
	if !strings.HasPrefix(output, "<") {
		t.Error("Expected PRI prefix in output")
	}
	if !strings.Contains(output, "accessgov") {
		t.Error("Expected app name 'accessgov' in output")
	}
	if !strings.Contains(output, "grant") {
		t.Error("Expected message ID 'grant' in output")
	}
	if !strings.Contains(output, `role="analyst"`) {
		t.Error("Expected role in structured data")
	}
	if !strings.Contains(output, `resource="fin-ledger"`) {
		t.Error("Expected resource in structured data")
	}
	if !strings.Contains(output, "alice set write on fin-ledger for analyst via set") {
		t.Error("Expected grant message in output")
	}
	if !strings.HasSuffix(output, "\n") {
		t.Error("Expected trailing newline")
	}
}

func TestGrantEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     GrantEvent
		wantMsg   string
		wantSev   Severity
		wantFac   int
		wantMsgID string
	}{
		{
			name: "single cell set",
			event: GrantEvent{
				Actor:      "alice",
				RoleID:     "analyst",
				ResourceID: "fin-ledger",
				Level:      "read",
				Operation:  "set",
			},
			wantMsg:   "set read on fin-ledger",
			wantSev:   SeverityNotice,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "grant",
		},
		{
			name: "bulk application",
			event: GrantEvent{
				Actor:     "alice",
				Level:     "write",
				Operation: "bulk",
				CellCount: 6,
			},
			wantMsg:   "applied level write to 6 matrix cells",
			wantSev:   SeverityNotice,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "grant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.Facility() != tt.wantFac {
				t.Errorf("Facility() = %v, want %v", tt.event.Facility(), tt.wantFac)
			}
			if tt.event.MessageID() != tt.wantMsgID {
				t.Errorf("MessageID() = %v, want %v", tt.event.MessageID(), tt.wantMsgID)
			}
		})
	}
}

func TestRequestEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   RequestEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name: "low risk request",
			event: RequestEvent{
				RequestID:  "req-1",
				Requester:  "bob",
				ResourceID: "docs-wiki",
				AccessType: "read",
				Priority:   "low",
				RiskScore:  20,
				RiskLevel:  "low",
			},
			wantMsg: "bob requested read access to docs-wiki",
			wantSev: SeverityInfo,
		},
		{
			name: "high risk request warns",
			event: RequestEvent{
				RequestID:  "req-2",
				Requester:  "bob",
				ResourceID: "fin-ledger",
				AccessType: "admin",
				Priority:   "critical",
				RiskScore:  95,
				RiskLevel:  "high",
			},
			wantMsg: "risk high",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.MessageID() != "request" {
				t.Errorf("MessageID() = %v, want 'request'", tt.event.MessageID())
			}
		})
	}
}

func TestDecisionEvent(t *testing.T) {
	approve := DecisionEvent{
		RequestID: "req-1",
		Approver:  "alice",
		Decision:  "approve",
		Position:  0,
		Status:    "pending",
	}
	if approve.MessageID() != "decision" {
		t.Errorf("MessageID() = %v, want 'decision'", approve.MessageID())
	}
	if !strings.Contains(approve.Message(), "alice decided approve at step 0") {
		t.Errorf("Message() = %q, want approval wording", approve.Message())
	}
	if approve.Severity() != SeverityInfo {
		t.Errorf("Severity() = %v, want SeverityInfo", approve.Severity())
	}

	reject := DecisionEvent{
		RequestID: "req-1",
		Approver:  "alice",
		Decision:  "reject",
		Position:  0,
		Status:    "rejected",
	}
	if reject.Severity() != SeverityNotice {
		t.Errorf("Severity() = %v, want SeverityNotice for rejections", reject.Severity())
	}
	if !strings.Contains(reject.Message(), "request is rejected") {
		t.Errorf("Message() = %q, want resulting status", reject.Message())
	}
}

func TestEscalationEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   EscalationEvent
		wantMsg string
	}{
		{
			name:    "manual escalation names the actor",
			event:   EscalationEvent{RequestID: "req-1", Actor: "alice", Reason: "admin"},
			wantMsg: "alice escalated request req-1",
		},
		{
			name:    "timeout escalation has no actor",
			event:   EscalationEvent{RequestID: "req-1", Reason: "timeout"},
			wantMsg: "due date passed while pending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != SeverityWarning {
				t.Errorf("Severity() = %v, want SeverityWarning", tt.event.Severity())
			}
			if tt.event.MessageID() != "escalate" {
				t.Errorf("MessageID() = %v, want 'escalate'", tt.event.MessageID())
			}
		})
	}

	sd := EscalationEvent{RequestID: "req-1", Reason: "timeout"}.StructuredData()
	if _, ok := sd[SDIDActor]; ok {
		t.Error("timeout escalations should carry no actor block")
	}
}

func TestViolationEvent(t *testing.T) {
	tests := []struct {
		sev     string
		wantSev Severity
	}{
		{"critical", SeverityError},
		{"high", SeverityWarning},
		{"medium", SeverityNotice},
		{"low", SeverityNotice},
	}

	for _, tt := range tests {
		t.Run(tt.sev, func(t *testing.T) {
			event := ViolationEvent{
				ViolationID: "v-1",
				Framework:   "SOX",
				Sev:         tt.sev,
				Status:      "open",
			}
			if event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", event.Severity(), tt.wantSev)
			}
			if event.Facility() != FacilityAuth {
				t.Errorf("Facility() = %v, want FacilityAuth", event.Facility())
			}
		})
	}
}

func TestRecomputeEvent(t *testing.T) {
	event := RecomputeEvent{
		Framework:  "SOX",
		Score:      68,
		Status:     "error",
		Trend:      "down",
		Violations: 3,
	}

	if event.MessageID() != "recompute" {
		t.Errorf("MessageID() = %v, want 'recompute'", event.MessageID())
	}
	if !strings.Contains(event.Message(), "68.0 (error, trend down, 3 violations)") {
		t.Errorf("Message() = %q, want score summary", event.Message())
	}
	if event.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want SeverityWarning for error status", event.Severity())
	}
}

func TestStructuredData(t *testing.T) {
	event := RequestEvent{
		RequestID:  "req-1",
		Requester:  "bob",
		ResourceID: "fin-ledger",
		AccessType: "write",
		RiskScore:  75,
		RiskLevel:  "medium",
	}

	sd := event.StructuredData()

	if sd[SDIDActor]["user"] != "bob" {
		t.Errorf("StructuredData actor.user = %v, want 'bob'", sd[SDIDActor]["user"])
	}
	if sd[SDIDSubject]["request"] != "req-1" {
		t.Errorf("StructuredData subject.request = %v, want 'req-1'", sd[SDIDSubject]["request"])
	}
	if sd[SDIDRisk]["score"] != "75" {
		t.Errorf("StructuredData risk.score = %v, want '75'", sd[SDIDRisk]["score"])
	}
}

func TestAuditToggle(t *testing.T) {
	// Save original state
	originalEnabled := auditEnabled
	defer func() {
		auditEnabled = originalEnabled
	}()

	SetEnabled(false)
	if IsEnabled() {
		t.Error("Expected audit to be disabled")
	}

	SetEnabled(true)
	if !IsEnabled() {
		t.Error("Expected audit to be enabled")
	}
}

func TestEscapeSDValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", `"simple"`},
		{`with"quote`, `"with\"quote"`},
		{`with\backslash`, `"with\\backslash"`},
		{`with]bracket`, `"with\]bracket"`},
		{`all"special\chars]`, `"all\"special\\chars\]"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeSDValue(tt.input)
			if got != tt.want {
				t.Errorf("escapeSDValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
