package results

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/psibench/pkg/core"
)

const breakdownCSV = `Sender,Receiver,OPRF_s,Gen_Idx_s,Query_Idx_s,Get_Key_s,Dec_s
1048576,1024,0.5,0.1,0.2,0.05,0.01
65536,16,0.01,0.002,0.003,0.001,0.0005
1048576,256,0.25,0.05,0.1,0.025,0.005
65536,1,0.001,0.0002,0.0003,0.0001,0.00005
`

func TestLoadStageBreakdown(t *testing.T) {
	got, err := LoadStageBreakdown(strings.NewReader(breakdownCSV))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 65536, got[0].Sender)
	assert.Equal(t, 1048576, got[1].Sender)

	big := got[1]
	require.Len(t, big.Rows, 2)
	assert.Equal(t, 256, big.Rows[0].Receiver)
	assert.Equal(t, 1024, big.Rows[1].Receiver)
	assert.InDelta(t, 500.0, big.Rows[1].StagesMS[0], 1e-9)
	assert.InDelta(t, 860.0, big.Rows[1].TotalMS(), 1e-9)
}

func TestLoadStageBreakdown_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Missing Stage Column", "Sender,Receiver,OPRF_s\n1,1,0.1\n"},
		{"Non Numeric", "Sender,Receiver,OPRF_s,Gen_Idx_s,Query_Idx_s,Get_Key_s,Dec_s\n1,1,fast,0,0,0,0\n"},
		{"Short Row", "Sender,Receiver,OPRF_s,Gen_Idx_s,Query_Idx_s,Get_Key_s,Dec_s\n1,1,0.1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStageBreakdown(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrMalformedInput), "got %v", err)
		})
	}
}

func TestLoadIntersectionSweep(t *testing.T) {
	input := "Intersection_Size,Total_Offline(s),Total_Online(s),Communication(MB)\n" +
		"1,420.5,1.2,10.5\n" +
		"102,421.0,1.3,10.6\n"

	got, err := LoadIntersectionSweep(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, SweepPoint{Intersection: 102, OfflineSec: 421, OnlineSec: 1.3, CommunicationMB: 10.6}, got[1])
}

func TestLoadSchemeTable(t *testing.T) {
	input := "online time (s) by receiver size\n" +
		"scheme,2^0,2^6,2^10\n" +
		"Our Scheme,0.5,0.6,0.9\n" +
		"APSI,1.5,1.7,2.4\n"

	got, err := LoadSchemeTable(strings.NewReader(input), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2^0", "2^6", "2^10"}, got.Labels)
	assert.Equal(t, []string{"Our Scheme", "APSI"}, got.Schemes)

	apsi, ok := got.Series("APSI")
	require.True(t, ok)
	assert.Equal(t, []float64{1.5, 1.7, 2.4}, apsi)

	_, ok = got.Series("PIR")
	assert.False(t, ok)
}

func TestLoadSchemeTable_UnnamedHeader(t *testing.T) {
	input := ",2^0,2^6\nOur Scheme,1,2\nAPSI,3,4\n"
	got, err := LoadSchemeTable(strings.NewReader(input), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Our Scheme", "APSI"}, got.Schemes)
}

func TestLoadSchemeTable_MissingMetadata(t *testing.T) {
	_, err := LoadSchemeTable(strings.NewReader(""), 1)
	assert.True(t, errors.Is(err, core.ErrMalformedInput))
}

func TestParseAPSILabel(t *testing.T) {
	got, err := ParseAPSILabel("1048576_256_128_32_8_4t")
	require.NoError(t, err)
	assert.Equal(t, APSILabel{Sender: 1048576, Receiver: 256, Intersection: 128, LabelBytes: 32, ItemBytes: 8, Threads: 4}, got)

	_, err = ParseAPSILabel("1048576_256")
	assert.True(t, errors.Is(err, core.ErrMalformedInput))
	_, err = ParseAPSILabel("a_b_c_d_e_1t")
	assert.True(t, errors.Is(err, core.ErrMalformedInput))
}

const apsiCSV = `label(sender size+receiver size+intersecting size+label bytes+item bytes+thread num),com,offline time,online time,param
1048576_1024_512_32_8_1t,2048 KB,900 s,3.5 s,1M-1024.json
1048576_256_128_32_8_1t,1024 KB,800 s,2.5 s,1M-1.json
1048576_256_128_32_8_1t,512 KB,850 s,2.0 s,1M-256.json
1048576_256_128_32_8_4t,256 KB,400 s,1.0 s,1M-256.json
65536_256_128_32_8_1t,128 KB,100 s,0.5 s,64K.json
1048576_1_1_32_8_1t,100 KB,700 s,1.0 s,1M-1.json
1048576_1_1_32_8_1t,50 KB,600 s,0.5 s,1M-1-alt.json
`

func TestLoadAPSIPerformance(t *testing.T) {
	got, err := LoadAPSIPerformance(strings.NewReader(apsiCSV), DefaultAPSIFilter())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []int{1, 256, 1024}, []int{got[0].Receiver, got[1].Receiver, got[2].Receiver})

	// First row wins without a preference.
	assert.InDelta(t, 100.0/1024, got[0].CommunicationMB, 1e-12)
	// The preferred parameter file replaces the first row.
	assert.InDelta(t, 0.5, got[1].CommunicationMB, 1e-12)
	assert.Equal(t, 850.0, got[1].OfflineSec)
	assert.Equal(t, 2.0, got[1].OnlineSec)
	assert.InDelta(t, 2.0, got[2].CommunicationMB, 1e-12)
}

func TestLoadAPSIPerformance_BadUnit(t *testing.T) {
	input := "label,com,offline time,online time,param\n1048576_1_1_32_8_1t,lots,1 s,1 s,x.json\n"
	_, err := LoadAPSIPerformance(strings.NewReader(input), DefaultAPSIFilter())
	assert.True(t, errors.Is(err, core.ErrMalformedInput))
}

func TestLoadSchemePerformance(t *testing.T) {
	input := "# our scheme, single thread\n" +
		"Sender,Receiver,com,sum_offline,sum_online,note\n" +
		"1048576,1024,12.5,500,2.5,a\n" +
		"1048576,1,10.0,480,0.9,b\n" +
		"65536,1,1.0,30,0.1,c\n" +
		"1048576,16\n"

	got, err := LoadSchemePerformance(strings.NewReader(input), DefaultSender)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, PerformancePoint{Receiver: 1, CommunicationMB: 10, OfflineSec: 480, OnlineSec: 0.9}, got[0])
	assert.Equal(t, 1024, got[1].Receiver)
}
