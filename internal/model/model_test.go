package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-wms-feed/internal/model"
)

func TestKeycheck(t *testing.T) {
	assert.Equal(t, "PO1_IT1_PP1", model.Keycheck("PO1", "IT1", "PP1"))
	assert.Equal(t, "__", model.Keycheck("", "", ""))
}

func TestFDCFromChildPO(t *testing.T) {
	assert.Equal(t, "ABC", model.FDCFromChildPO("ABC12345"))
	assert.Equal(t, "AB", model.FDCFromChildPO("AB"))
	assert.Equal(t, "", model.FDCFromChildPO(""))
}

func TestJobnoTypeOf(t *testing.T) {
	assert.Equal(t, "J1_DLV", model.JobnoTypeOf("J1", "DLV001"))
	assert.Equal(t, "J1_DL", model.JobnoTypeOf("J1", "DL"))
}
