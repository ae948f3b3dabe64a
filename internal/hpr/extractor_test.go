package hpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hprcalc/pkg/contracts/domain"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<hpr:HarvestedProduction xmlns:hpr="urn:skogforsk:stanford2010">
  <hpr:SpeciesGroupDefinition>
    <hpr:SpeciesGroupKey>1</hpr:SpeciesGroupKey>
    <hpr:SpeciesGroupName>Tall</hpr:SpeciesGroupName>
  </hpr:SpeciesGroupDefinition>
  <hpr:SpeciesGroupDefinition>
    <hpr:SpeciesGroupKey>2</hpr:SpeciesGroupKey>
    <hpr:SpeciesGroupName>Gran</hpr:SpeciesGroupName>
  </hpr:SpeciesGroupDefinition>
  <hpr:Machine>
    <hpr:Stem stemKey="101" speciesGroupKey="1" dbh="215" harvestDate="2024-03-11T08:30:00">
      <hpr:Log>
        <hpr:LogVolume logVolumeCategory="m3sub">0,42</hpr:LogVolume>
        <hpr:LogVolume logVolumeCategory="m3sob">0,48</hpr:LogVolume>
      </hpr:Log>
      <hpr:Log>
        <hpr:LogVolume logVolumeCategory="M3 (FUB)">0.31</hpr:LogVolume>
      </hpr:Log>
    </hpr:Stem>
    <hpr:Stem stemKey="102" speciesGroupKey="2" stemVolume="0.95">
      <hpr:DBH>188</hpr:DBH>
    </hpr:Stem>
    <hpr:Stem speciesGroupKey="9">
      <hpr:Log>
        <hpr:LogVolume logVolumeCategory="dm3sub">640</hpr:LogVolume>
      </hpr:Log>
    </hpr:Stem>
  </hpr:Machine>
</hpr:HarvestedProduction>`

func TestExtractorParse(t *testing.T) {
	e := NewExtractor(nil)
	records, logs, err := e.Parse([]byte(sampleDoc), "sample.hpr")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 3, logs)

	pine := records[0]
	assert.Equal(t, "101", pine.Key)
	assert.Equal(t, domain.SpeciesPine, pine.Species)
	assert.Equal(t, "Tall", pine.SpeciesName)
	assert.InDelta(t, 215.0, pine.DiameterMM, 1e-9)
	assert.InDelta(t, 0.42+0.31, pine.Volume, 1e-9)
	assert.Equal(t, 2024, pine.HarvestedAt.Year())

	spruce := records[1]
	assert.Equal(t, domain.SpeciesSpruce, spruce.Species)
	assert.InDelta(t, 188.0, spruce.DiameterMM, 1e-9, "nested DBH element")
	assert.InDelta(t, 0.95, spruce.Volume, 1e-9, "stem attribute fallback")

	// Unknown group key: no name, broadleaf default, dm3 converted, key synthesized.
	other := records[2]
	assert.Equal(t, domain.SpeciesBroadleaf, other.Species)
	assert.Empty(t, other.SpeciesName)
	assert.False(t, other.HasDiameter())
	assert.InDelta(t, 0.64, other.Volume, 1e-9)
	assert.Equal(t, "sample.hpr#3", other.Key)
}

func TestExtractorNamespaceAgnostic(t *testing.T) {
	// Same structure without any namespace prefixes.
	doc := `<HarvestedProduction>
  <SpeciesGroupDefinition>
    <SpeciesGroupKey>1</SpeciesGroupKey>
    <SpeciesGroupName>Gran</SpeciesGroupName>
  </SpeciesGroupDefinition>
  <Stem stemKey="7" speciesGroupKey="1" dbh="150">
    <Log><LogVolume logVolumeCategory="m3sub">0.8</LogVolume></Log>
  </Stem>
</HarvestedProduction>`

	records, logs, err := NewExtractor(nil).Parse([]byte(doc), "plain.hpr")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, logs)
	assert.Equal(t, domain.SpeciesSpruce, records[0].Species)
	assert.InDelta(t, 0.8, records[0].Volume, 1e-9)
}

func TestExtractorMalformedDocument(t *testing.T) {
	records, logs, err := NewExtractor(nil).Parse([]byte("<HarvestedProduction><Stem"), "broken.hpr")
	assert.Error(t, err)
	assert.Empty(t, records)
	assert.Zero(t, logs)
}

func TestExtractorLogVolumePriority(t *testing.T) {
	// A price-category volume is only used when no sub-bark or fub volume
	// exists; an unknown category still counts as the any-positive fallback.
	doc := `<Root>
  <Stem stemKey="1">
    <Log>
      <LogVolume logVolumeCategory="m3 (price)">0.5</LogVolume>
      <LogVolume logVolumeCategory="m3fub">0.4</LogVolume>
    </Log>
    <Log>
      <LogVolume logVolumeCategory="mystery">0.2</LogVolume>
    </Log>
    <Log volume="0.1"/>
  </Stem>
</Root>`

	records, logs, err := NewExtractor(nil).Parse([]byte(doc), "prio.hpr")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, logs)
	assert.InDelta(t, 0.4+0.2+0.1, records[0].Volume, 1e-9)
}

func TestExtractorVolumeAttributeOrder(t *testing.T) {
	doc := `<Root>
  <Stem stemKey="1" volumeOverBark="1.2" volumeUnderBark="1.0"/>
  <Stem stemKey="2" stemVolume="-3" volume="0.7"/>
  <Stem stemKey="3"/>
</Root>`

	records, _, err := NewExtractor(nil).Parse([]byte(doc), "attrs.hpr")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.InDelta(t, 1.0, records[0].Volume, 1e-9, "under-bark before over-bark")
	assert.InDelta(t, 0.7, records[1].Volume, 1e-9, "non-positive candidates skipped")
	assert.Zero(t, records[2].Volume)
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0.42", 0.42},
		{"0,42", 0.42},
		{" 1 234,5 ", 1234.5},
		{"-7", -7},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"Inf", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ParseDecimal(tt.in), 1e-9, "input %q", tt.in)
	}
}
