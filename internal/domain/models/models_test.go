package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantType CommandType
		wantArgs []string
	}{
		{name: "keg lookup keeps qr case", message: "/keg SK12345678", wantType: CommandKeg, wantArgs: []string{"SK12345678"}},
		{name: "upper case command word", message: "/STATS", wantType: CommandStats},
		{name: "status with cider type", message: "/status SK12345678 full Apple", wantType: CommandStatus, wantArgs: []string{"SK12345678", "full", "Apple"}},
		{name: "without slash", message: "overdue 14", wantType: CommandOverdue, wantArgs: []string{"14"}},
		{name: "help alias", message: "start", wantType: CommandHelp},
		{name: "blank", message: "   ", wantType: CommandUnknown},
		{name: "unknown", message: "/refill 12", wantType: CommandUnknown, wantArgs: []string{"12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := ParseCommand(tt.message)
			assert.Equal(t, tt.wantType, cmd.Type)
			assert.Equal(t, tt.wantArgs, cmd.Args)
			assert.Equal(t, tt.message, cmd.Raw)
		})
	}
}

func TestOrderApplyRecomputesTotal(t *testing.T) {
	order := Order{Items: []OrderItem{{Type: "Apple", Quantity: 2}}, TotalKegs: 2}

	order.Apply(UpdateOrderInput{Notes: strPtr("call first")})
	assert.Equal(t, 2, order.TotalKegs)
	require.NotNil(t, order.Notes)
	assert.Equal(t, "call first", *order.Notes)

	items := []OrderItem{{Type: "Apple", Quantity: 3}, {Type: "Pear", Quantity: 4}}
	order.Apply(UpdateOrderInput{Items: &items})
	assert.Equal(t, 7, order.TotalKegs)

	items[0].Quantity = 100
	assert.Equal(t, 3, order.Items[0].Quantity, "patch slice must be copied")

	empty := []OrderItem{}
	order.Apply(UpdateOrderInput{Items: &empty, Notes: strPtr("  ")})
	assert.Equal(t, 0, order.TotalKegs)
	assert.NotNil(t, order.Items)
	assert.Nil(t, order.Notes)
}

func TestCustomerApplyKeepsAbsentFields(t *testing.T) {
	customer := Customer{Name: "Tipsy Tavern", Email: strPtr("bar@example.com"), IsActive: true}
	inactive := false

	customer.Apply(UpdateCustomerInput{Phone: strPtr(" 555-0100 "), IsActive: &inactive})

	assert.Equal(t, "Tipsy Tavern", customer.Name)
	assert.Equal(t, "bar@example.com", StringValue(customer.Email))
	assert.Equal(t, "555-0100", StringValue(customer.Phone))
	assert.False(t, customer.IsActive)
}

func TestKegCloneIsDeep(t *testing.T) {
	keg := Keg{ID: "K-12345678", CiderType: strPtr("Apple")}
	clone := keg.Clone()
	*clone.CiderType = "Pear"
	assert.Equal(t, "Apple", *keg.CiderType)
}

func TestKegStats(t *testing.T) {
	var stats KegStats
	for _, status := range []KegStatus{KegStatusFull, KegStatusFull, KegStatusClean, KegStatusDeployed, KegStatusDirty} {
		stats.Add(status)
	}
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, stats.Total, stats.Full+stats.Dirty+stats.Clean+stats.Deployed)
	assert.Equal(t, 2, stats.Count(KegStatusFull))
}

func TestErrorsUnwrapToSentinels(t *testing.T) {
	var err error = &NotFoundError{Entity: "Keg", ID: "K-1"}
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Keg not found", err.Error())

	err = &ConflictError{Entity: "Cider type", Field: "name", Value: "Apple"}
	assert.True(t, errors.Is(err, ErrConflict))

	verr := NewFieldValidationError("ciderType", "Beer type is required for full kegs")
	assert.Contains(t, verr.Error(), "ciderType")
}

func TestInboundMessageCommandText(t *testing.T) {
	tests := []struct {
		name string
		msg  InboundMessage
		want string
	}{
		{name: "text", msg: InboundMessage{Type: "text", Text: &MessageText{Body: "  /stats \n"}}, want: "/stats"},
		{name: "button", msg: InboundMessage{Type: "interactive", Interactive: &Interactive{ButtonReply: &ReplyChoice{ID: "/overdue", Title: "Overdue"}}}, want: "/overdue"},
		{name: "list", msg: InboundMessage{Type: "interactive", Interactive: &Interactive{ListReply: &ReplyChoice{ID: "/help"}}}, want: "/help"},
		{name: "image", msg: InboundMessage{Type: "image"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.CommandText())
		})
	}
}
