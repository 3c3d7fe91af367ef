package check_migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TenantService/internal/service/parser"
	"github.com/m04kA/SMC-TenantService/internal/service/validation"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{}) {}
func (noopLogger) Warn(format string, v ...interface{}) {}

const baseDocument = `
version: "1.0.0"
business:
  id: glow-salon
  name: Glow Salon
  description: Hair and beauty
  timezone: Europe/Berlin
  locale: de-DE
  currency: EUR
contact:
  address: Hauptstrasse 1, Berlin
  email: hello@glow-salon.example
  phone: "+49 30 1234567"
  website: https://glow-salon.example
timeSlotDuration: 30
availability:
  - day: monday
    open: "09:00"
    close: "18:00"
  - day: tuesday
    open: "09:00"
    close: "18:00"
  - day: wednesday
    open: "09:00"
    close: "18:00"
  - day: thursday
    open: "09:00"
    close: "18:00"
  - day: friday
    open: "09:00"
    close: "18:00"
  - day: saturday
    enabled: false
  - day: sunday
    enabled: false
categories:
  - id: hair
    name: Hair
    services:
      - id: haircut
        name: Haircut
        duration: 30
        price: 3000
      - id: coloring
        name: Coloring
        duration: 90
        price: 9000
bookingLimits:
  advanceBookingDays: 30
  maxSimultaneousBookings: 1
`

func newUsecase() *Usecase {
	return NewUsecase(parser.NewParser(validation.NewValidator()), noopLogger{})
}

func TestExecute_IdenticalConfigsAreSafe(t *testing.T) {
	res, err := newUsecase().Execute(Request{
		CurrentText:  baseDocument,
		ProposedText: baseDocument,
	})

	require.NoError(t, err)
	assert.True(t, res.Safe)
	assert.Empty(t, res.BreakingChanges)
	assert.Empty(t, res.Errors)
}

func TestExecute_DurationChangeIsBreaking(t *testing.T) {
	proposed := strings.Replace(baseDocument, "duration: 30", "duration: 45", 1)

	res, err := newUsecase().Execute(Request{
		CurrentText:  baseDocument,
		ProposedText: proposed,
	})

	require.NoError(t, err)
	assert.False(t, res.Safe)
	require.Len(t, res.BreakingChanges, 1)
	assert.Contains(t, res.BreakingChanges[0], "haircut")
	assert.Contains(t, res.BreakingChanges[0], "30")
	assert.Contains(t, res.BreakingChanges[0], "45")
}

func TestExecute_RemovedServiceIsBreaking(t *testing.T) {
	proposed := strings.Replace(baseDocument, `      - id: coloring
        name: Coloring
        duration: 90
        price: 9000
`, "", 1)

	res, err := newUsecase().Execute(Request{
		CurrentText:  baseDocument,
		ProposedText: proposed,
	})

	require.NoError(t, err)
	assert.False(t, res.Safe)
	require.Len(t, res.BreakingChanges, 1)
	assert.Equal(t, "services.coloring: removed, existing bookings reference it", res.BreakingChanges[0])
}

func TestExecute_BusinessIDAndTimezoneChanges(t *testing.T) {
	proposed := strings.Replace(baseDocument, "id: glow-salon", "id: glow-studio", 1)
	proposed = strings.Replace(proposed, "timezone: Europe/Berlin", "timezone: Europe/Paris", 1)

	res, err := newUsecase().Execute(Request{
		CurrentText:  baseDocument,
		ProposedText: proposed,
	})

	require.NoError(t, err)
	assert.False(t, res.Safe)
	require.Len(t, res.BreakingChanges, 2)
	assert.Contains(t, res.BreakingChanges[0], `business.id: changed from "glow-salon" to "glow-studio"`)
	assert.Contains(t, res.BreakingChanges[1], `business.timezone: changed from "Europe/Berlin" to "Europe/Paris"`)
}

func TestExecute_ServiceMovedBetweenCategoriesIsNotBreaking(t *testing.T) {
	proposed := strings.Replace(baseDocument, `      - id: coloring
        name: Coloring
        duration: 90
        price: 9000
`, "", 1)
	proposed = strings.Replace(proposed, `bookingLimits:`, `  - id: color
    name: Color
    services:
      - id: coloring
        name: Coloring
        duration: 90
        price: 9000
bookingLimits:`, 1)

	res, err := newUsecase().Execute(Request{
		CurrentText:  baseDocument,
		ProposedText: proposed,
	})

	require.NoError(t, err)
	assert.True(t, res.Safe, "breaking: %v", res.BreakingChanges)
}

func TestExecute_InvalidInput(t *testing.T) {
	res, err := newUsecase().Execute(Request{CurrentText: "", ProposedText: baseDocument})

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, res.Errors, "current: document is required")
}

func TestExecute_InvalidProposedDocument(t *testing.T) {
	proposed := strings.Replace(baseDocument, "price: 3000", "price: -5", 1)

	res, err := newUsecase().Execute(Request{
		CurrentText:  baseDocument,
		ProposedText: proposed,
	})

	require.ErrorIs(t, err, ErrValidationFailed)
	assert.False(t, res.Safe)
	require.NotEmpty(t, res.Errors)
	assert.True(t, strings.HasPrefix(res.Errors[0], "proposed: "), res.Errors[0])
}
