package classifier

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/permit-engine/internal/types"
)

func TestAssessConfidence(t *testing.T) {
	tests := []struct {
		name string
		req  types.PermitJobRequest
		want ruleConfidence
	}{
		{
			"standard replacement",
			types.PermitJobRequest{JobType: types.JobReplacement, Tonnage: 3},
			confidenceHigh,
		},
		{
			"replacement at threshold",
			types.PermitJobRequest{JobType: types.JobReplacement, Tonnage: 5},
			confidenceHigh,
		},
		{
			"oversized replacement",
			types.PermitJobRequest{JobType: types.JobReplacement, Tonnage: 5.5},
			confidenceLow,
		},
		{
			"modification",
			types.PermitJobRequest{JobType: types.JobModification},
			confidenceLow,
		},
		{
			"repair",
			types.PermitJobRequest{JobType: types.JobRepair},
			confidenceLow,
		},
		{
			"high btu new installation",
			types.PermitJobRequest{JobType: types.JobNewInstallation, BTU: 200000},
			confidenceLow,
		},
		{
			"long free-text notes",
			types.PermitJobRequest{JobType: types.JobNewInstallation, AdditionalDetails: strings.Repeat("x", 60)},
			confidenceLow,
		},
		{
			"plain new installation",
			types.PermitJobRequest{JobType: types.JobNewInstallation},
			confidenceHigh,
		},
		{
			// Commercial wins over every edge-case signal
			"commercial repair with high btu",
			types.PermitJobRequest{PropertyType: types.PropertyCommercial, JobType: types.JobRepair, BTU: 500000},
			confidenceHigh,
		},
		{
			"industrial modification",
			types.PermitJobRequest{PropertyType: types.PropertyIndustrial, JobType: types.JobModification},
			confidenceHigh,
		},
		{
			"ductwork repair",
			types.PermitJobRequest{EquipmentType: types.EquipmentDuctwork, JobType: types.JobRepair},
			confidenceHigh,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, assessConfidence(&tt.req))
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection reset")

	aiErr := &AIError{Message: "provider call failed", Cause: cause}
	assert.ErrorIs(t, aiErr, cause)
	assert.Contains(t, aiErr.Error(), "provider call failed")

	parseErr := &ParseError{Message: "bad response"}
	assert.NoError(t, errors.Unwrap(parseErr))
	assert.Contains(t, parseErr.Error(), "bad response")
}
