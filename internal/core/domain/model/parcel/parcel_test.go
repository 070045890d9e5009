package parcel_test

import (
	"math"
	"testing"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func TestNewParcel(t *testing.T) {
	t.Run("should create parcel with valid params", func(t *testing.T) {
		id := kernel.NewUUID()
		weight := 2.5
		value := 120.0

		p, err := parcel.NewParcel(id, "TRK-100", &weight, &value, "Berlin", `{"trackingId":"TRK-100"}`)

		require.NoError(t, err)
		assert.True(t, p.ID().IsEqual(id))
		assert.Equal(t, "TRK-100", p.TrackingID())
		require.NotNil(t, p.WeightKg())
		assert.InDelta(t, 2.5, *p.WeightKg(), 0.0001)
		require.NotNil(t, p.ValueEur())
		assert.InDelta(t, 120.0, *p.ValueEur(), 0.0001)
		assert.Equal(t, "Berlin", p.Destination())
		assert.Equal(t, `{"trackingId":"TRK-100"}`, p.RawSource())
		assert.Nil(t, p.Department())
		assert.Equal(t, parcel.StatusUnknown, p.ApprovalStatus())
		assert.NoError(t, p.Validate())
	})

	t.Run("should allow nil weight and value", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-101", nil, nil, "", "")

		require.NoError(t, err)
		assert.Nil(t, p.WeightKg())
		assert.Nil(t, p.ValueEur())
	})

	t.Run("should return error when tracking ID is empty", func(t *testing.T) {
		_, err := parcel.NewParcel(kernel.NewUUID(), "", nil, nil, "", "")

		assert.ErrorIs(t, err, parcel.ErrTrackingIDIsRequired)
	})

	t.Run("should return error when id is empty", func(t *testing.T) {
		_, err := parcel.NewParcel(kernel.UUID{}, "TRK-102", nil, nil, "", "")

		assert.Error(t, err)
	})

	t.Run("should return error when weight is not finite", func(t *testing.T) {
		_, err := parcel.NewParcel(kernel.NewUUID(), "TRK-103", ptr(math.NaN()), nil, "", "")
		assert.Error(t, err)

		_, err = parcel.NewParcel(kernel.NewUUID(), "TRK-103", ptr(math.Inf(1)), nil, "", "")
		assert.Error(t, err)
	})

	t.Run("should return error when value is not finite", func(t *testing.T) {
		_, err := parcel.NewParcel(kernel.NewUUID(), "TRK-104", nil, ptr(math.NaN()), "", "")

		assert.Error(t, err)
	})
}

func TestParcel_InsuranceGate(t *testing.T) {
	t.Run("should mark insurance not required on fresh parcel", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-200", nil, nil, "", "")
		require.NoError(t, err)

		err = p.MarkInsuranceNotRequired()

		require.NoError(t, err)
		assert.Equal(t, parcel.StatusNotRequired, p.ApprovalStatus())
	})

	t.Run("should park fresh parcel as pending", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-201", nil, ptr(5000), "", "")
		require.NoError(t, err)

		err = p.RequireInsurance()

		require.NoError(t, err)
		assert.Equal(t, parcel.StatusPending, p.ApprovalStatus())
	})

	t.Run("should not re-gate a parcel that already has a status", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-202", nil, nil, "", "")
		require.NoError(t, err)
		require.NoError(t, p.MarkInsuranceNotRequired())

		assert.Error(t, p.RequireInsurance())
		assert.Error(t, p.MarkInsuranceNotRequired())
	})
}

func TestParcel_ApproveInsurance(t *testing.T) {
	t.Run("should approve pending parcel and record decision", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-300", nil, ptr(2000), "", "")
		require.NoError(t, err)
		require.NoError(t, p.RequireInsurance())

		approver := kernel.NewUUID()
		decidedAt := time.Now().UTC()
		err = p.ApproveInsurance(approver, decidedAt)

		require.NoError(t, err)
		assert.Equal(t, parcel.StatusApproved, p.ApprovalStatus())
		require.NotNil(t, p.ApprovedBy())
		assert.True(t, p.ApprovedBy().IsEqual(approver))
		require.NotNil(t, p.ApprovedAt())
		assert.Equal(t, decidedAt, *p.ApprovedAt())
	})

	t.Run("should reject pending parcel and record decision", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-301", nil, ptr(2000), "", "")
		require.NoError(t, err)
		require.NoError(t, p.RequireInsurance())

		rejector := kernel.NewUUID()
		err = p.RejectInsurance(rejector, time.Now().UTC())

		require.NoError(t, err)
		assert.Equal(t, parcel.StatusRejected, p.ApprovalStatus())
		require.NotNil(t, p.ApprovedBy())
		assert.True(t, p.ApprovedBy().IsEqual(rejector))
	})

	t.Run("should not approve parcel that is not pending", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-302", nil, nil, "", "")
		require.NoError(t, err)
		require.NoError(t, p.MarkInsuranceNotRequired())

		err = p.ApproveInsurance(kernel.NewUUID(), time.Now().UTC())

		assert.Error(t, err)
	})

	t.Run("should not approve twice", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-303", nil, ptr(2000), "", "")
		require.NoError(t, err)
		require.NoError(t, p.RequireInsurance())
		require.NoError(t, p.ApproveInsurance(kernel.NewUUID(), time.Now().UTC()))

		err = p.ApproveInsurance(kernel.NewUUID(), time.Now().UTC())

		assert.Error(t, err)
	})

	t.Run("should return error when approver id is empty", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-304", nil, ptr(2000), "", "")
		require.NoError(t, err)
		require.NoError(t, p.RequireInsurance())

		err = p.ApproveInsurance(kernel.UUID{}, time.Now().UTC())

		assert.Error(t, err)
		assert.Equal(t, parcel.StatusPending, p.ApprovalStatus())
	})
}

func TestParcel_AssignDepartment(t *testing.T) {
	t.Run("should assign department to routed parcel", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-400", ptr(3), nil, "", "")
		require.NoError(t, err)
		require.NoError(t, p.MarkInsuranceNotRequired())

		departmentID := kernel.NewUUID()
		err = p.AssignDepartment(departmentID)

		require.NoError(t, err)
		require.NotNil(t, p.Department())
		assert.True(t, p.Department().IsEqual(departmentID))
	})

	t.Run("should allow reassignment", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-401", ptr(3), nil, "", "")
		require.NoError(t, err)
		require.NoError(t, p.MarkInsuranceNotRequired())
		require.NoError(t, p.AssignDepartment(kernel.NewUUID()))

		next := kernel.NewUUID()
		err = p.AssignDepartment(next)

		require.NoError(t, err)
		assert.True(t, p.Department().IsEqual(next))
	})

	t.Run("should not assign department while pending approval", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-402", ptr(3), ptr(5000), "", "")
		require.NoError(t, err)
		require.NoError(t, p.RequireInsurance())

		err = p.AssignDepartment(kernel.NewUUID())

		assert.Error(t, err)
		assert.Nil(t, p.Department())
	})

	t.Run("should return error when department id is empty", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-403", ptr(3), nil, "", "")
		require.NoError(t, err)
		require.NoError(t, p.MarkInsuranceNotRequired())

		err = p.AssignDepartment(kernel.UUID{})

		assert.Error(t, err)
	})
}

func TestRestoreParcel(t *testing.T) {
	t.Run("should restore parcel with full state", func(t *testing.T) {
		id := kernel.NewUUID()
		departmentID := kernel.NewUUID()
		approver := kernel.NewUUID()
		approvedAt := time.Now().UTC()

		p, err := parcel.RestoreParcel(id, "TRK-500", ptr(12), ptr(1500), "Rome", "{}",
			&departmentID, parcel.StatusApproved, &approver, &approvedAt)

		require.NoError(t, err)
		assert.Equal(t, parcel.StatusApproved, p.ApprovalStatus())
		require.NotNil(t, p.Department())
		assert.True(t, p.Department().IsEqual(departmentID))
		require.NotNil(t, p.ApprovedBy())
		assert.True(t, p.ApprovedBy().IsEqual(approver))
	})

	t.Run("should return error for invalid stored status", func(t *testing.T) {
		_, err := parcel.RestoreParcel(kernel.NewUUID(), "TRK-501", nil, nil, "", "",
			nil, parcel.ApprovalStatus(42), nil, nil)

		assert.Error(t, err)
	})

	t.Run("should return error when pending parcel carries department", func(t *testing.T) {
		departmentID := kernel.NewUUID()

		_, err := parcel.RestoreParcel(kernel.NewUUID(), "TRK-502", nil, nil, "", "",
			&departmentID, parcel.StatusPending, nil, nil)

		assert.Error(t, err)
	})
}

func TestParcel_Validate(t *testing.T) {
	t.Run("should return error for zero-value parcel", func(t *testing.T) {
		var p parcel.Parcel

		assert.ErrorIs(t, p.Validate(), parcel.ErrParcelIsNotConstructed)
	})

	t.Run("should return error for nil parcel", func(t *testing.T) {
		var p *parcel.Parcel

		assert.ErrorIs(t, p.Validate(), parcel.ErrParcelIsNotConstructed)
	})
}
