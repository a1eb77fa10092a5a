package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperatorFromFranchiseID(t *testing.T) {
	assert.True(t, OperatorFromFranchiseID(nil).IsCompany())

	empty := ""
	assert.True(t, OperatorFromFranchiseID(&empty).IsCompany())

	id := "franchise-7"
	op := OperatorFromFranchiseID(&id)
	assert.False(t, op.IsCompany())
	assert.Equal(t, "franchise-7", op.FranchiseID)
}

func TestOperatorEqual(t *testing.T) {
	assert.True(t, CompanyOperator().Equal(CompanyOperator()))
	assert.True(t, FranchiseOperator("f1").Equal(FranchiseOperator("f1")))
	assert.False(t, FranchiseOperator("f1").Equal(FranchiseOperator("f2")))
	assert.False(t, CompanyOperator().Equal(FranchiseOperator("f1")))
}

func TestOperatorFranchiseIDPtr(t *testing.T) {
	assert.Nil(t, CompanyOperator().FranchiseIDPtr())

	ptr := FranchiseOperator("f1").FranchiseIDPtr()
	if assert.NotNil(t, ptr) {
		assert.Equal(t, "f1", *ptr)
	}
}
