package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeInfoReplacesByKey(t *testing.T) {
	rec := &PatientRecord{AddlInfo: InfoList{
		{Key: "allergies", Data: map[string]interface{}{"pollen": true}},
		{Key: "insurance", Data: map[string]interface{}{"provider": "Acme"}},
	}}

	rec.MergeInfo(InfoEntry{Key: "allergies", Data: map[string]interface{}{"peanuts": true}})

	require.Len(t, rec.AddlInfo, 2)
	assert.Equal(t, map[string]interface{}{"peanuts": true}, rec.AddlInfo[0].Data)
	assert.Equal(t, "insurance", rec.AddlInfo[1].Key)
}

func TestMergeInfoAppendsNewKey(t *testing.T) {
	rec := &PatientRecord{}

	rec.MergeInfo(InfoEntry{Key: "allergies", Data: map[string]interface{}{"pollen": true}})
	rec.MergeInfo(InfoEntry{Key: "insurance", Data: map[string]interface{}{"provider": "Acme"}})

	require.Len(t, rec.AddlInfo, 2)
	assert.Equal(t, "allergies", rec.AddlInfo[0].Key)
	assert.Equal(t, "insurance", rec.AddlInfo[1].Key)
}

func TestMergeInfoKeylessEntriesAlwaysAppend(t *testing.T) {
	rec := &PatientRecord{}

	rec.MergeInfo(InfoEntry{Data: map[string]interface{}{"note": "first"}})
	rec.MergeInfo(InfoEntry{Data: map[string]interface{}{"note": "second"}})

	assert.Len(t, rec.AddlInfo, 2)
}
