package figure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const breakdownCSV = `Sender,Receiver,OPRF_s,Gen_Idx_s,Query_Idx_s,Get_Key_s,Dec_s
4096,16,0.010,0.020,0.030,0.004,0.005
1024,1,0.001,0.002,0.003,0.004,0.005
1024,16,0.002,0.004,0.006,0.008,0.010
4096,1,0.005,0.010,0.015,0.002,0.003
16384,1,0.020,0.040,0.060,0.008,0.010
`

const sweepCSV = `Intersection_Size,Total_Offline(s),Total_Online(s),Communication(MB)
1,480.5,1.20,3.4
512,490.1,1.31,3.6
1024,501.7,1.45,3.9
`

const schemeCSV = `receiver data size vs scheme
scheme,2^10,2^12,2^14
Our Scheme,0.52,0.91,1.70
APSI,1.20,2.31,4.05
`

const apsiCSV = `label(sender size+receiver size+intersecting size+label bytes+item bytes+thread num),com,offline time,online time,param
1048576_1024_1_32_8_1t,5120 KB,300.5 s,1.5 s,1M-1024.json
1048576_4096_1_32_8_1t,10240 KB,320.1 s,2.9 s,1M-4096.json
1048576_4096_1_32_8_4t,10240 KB,120.1 s,1.1 s,1M-4096.json
`

const oursCSV = `# our scheme, single thread
Sender,Receiver,com,sum_offline,sum_online
1048576,4096,2.2,220.4,0.9
1048576,1024,1.1,200.3,0.4
65536,1024,0.5,20.0,0.1
`

// writeResults lays out a results directory and returns its path.
func writeResults(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	}
	return root
}

func requireImage(t *testing.T, path string, magic string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), len(magic))
	require.Equal(t, magic, string(data[:len(magic)]), "unexpected header in %s", path)
}

const pngMagic = "\x89PNG"
