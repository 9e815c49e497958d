package summit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "SummitCode,SummitName,RegionName,AssociationName,Latitude,Longitude,Points\n"

func TestParse_Basic(t *testing.T) {
	input := header +
		"W7A/AA-001,Mount Baldy,Eastern Arizona,Arizona,33.9172,-109.5637,10\n" +
		"W7W/KG-001,Mount Rainier,King,Washington,46.8523,-121.7603,8\n"

	summits, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, summits, 2)

	assert.Equal(t, "W7A/AA-001", summits[0].Code)
	assert.Equal(t, "Mount Baldy", summits[0].Name)
	assert.Equal(t, "Eastern Arizona", summits[0].Region)
	assert.Equal(t, "Arizona", summits[0].Association)
	assert.InDelta(t, 33.9172, summits[0].Latitude, 1e-9)
	assert.InDelta(t, -109.5637, summits[0].Longitude, 1e-9)
	assert.Equal(t, 10, summits[0].Points)
	assert.Equal(t, "W7W/KG-001", summits[1].Code)
}

func TestParse_PreservesSourceOrder(t *testing.T) {
	input := header +
		"W7W/KG-003,Charlie,King,Washington,47.3,-121.3,4\n" +
		"W7W/KG-001,Alpha,King,Washington,47.1,-121.1,2\n" +
		"W7W/KG-002,Bravo,King,Washington,47.2,-121.2,6\n"

	summits, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, summits, 3)
	assert.Equal(t, []string{"W7W/KG-003", "W7W/KG-001", "W7W/KG-002"},
		[]string{summits[0].Code, summits[1].Code, summits[2].Code})
}

func TestParse_DropsEmptyLatitude(t *testing.T) {
	input := header +
		"W7W/KG-001,Good,King,Washington,47.0,-121.0,8\n" +
		"W7W/KG-002,NoLat,King,Washington,,-121.0,8\n"

	summits, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, summits, 1)
	assert.Equal(t, "W7W/KG-001", summits[0].Code)
}

func TestParse_DropsNonNumericCoordinates(t *testing.T) {
	input := header +
		"W7W/KG-001,Bad,King,Washington,north,-121.0,8\n" +
		"W7W/KG-002,AlsoBad,King,Washington,47.0,west,8\n" +
		"W7W/KG-003,Good,King,Washington,47.0,-121.0,8\n"

	summits, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, summits, 1)
	assert.Equal(t, "W7W/KG-003", summits[0].Code)
}

func TestParse_DropsOutOfRangeCoordinates(t *testing.T) {
	input := header +
		"W7W/KG-001,FarNorth,King,Washington,91.0,-121.0,8\n" +
		"W7W/KG-002,FarWest,King,Washington,47.0,-181.0,8\n"

	summits, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, summits)
}

func TestParse_BadPointsDefaultsToZero(t *testing.T) {
	input := header +
		"W7W/KG-001,NoScore,King,Washington,47.0,-121.0,n/a\n" +
		"W7W/KG-002,Negative,King,Washington,47.1,-121.1,-4\n"

	summits, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, summits, 2)
	assert.Equal(t, 0, summits[0].Points)
	assert.Equal(t, 0, summits[1].Points)
}

func TestParse_ExtraColumnsPassThrough(t *testing.T) {
	input := "SummitCode,SummitName,RegionName,AssociationName,Latitude,Longitude,Points,AltM\n" +
		"W7W/KG-001,Tall,King,Washington,47.0,-121.0,8,1804\n"

	summits, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, summits, 1)
	assert.Equal(t, "1804", summits[0].Extra["AltM"])
}

func TestParse_MissingRequiredColumn(t *testing.T) {
	input := "SummitCode,SummitName,Latitude,Longitude\nW7W/KG-001,Partial,47.0,-121.0\n"

	_, err := Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestParse_EmptySource(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty source")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summits.csv")
	content := header + "W7W/KG-001,Mount Si,King,Washington,47.4881,-121.7224,2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	summits, err := Load(path)
	require.NoError(t, err)
	require.Len(t, summits, 1)
	assert.Equal(t, "Mount Si", summits[0].Name)
}
