package nif

import "fmt"

// Version is a packed a.b.c.d file version, one byte per component.
type Version uint32

// MakeVersion packs four version components.
func MakeVersion(a, b, c, d uint8) Version {
	return Version(uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d))
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// Known file versions. The feature-relevant ones mark where the layout changes.
var (
	V3_3_0_13   = MakeVersion(3, 3, 0, 13)
	V3_3_0_15   = MakeVersion(3, 3, 0, 15)
	V4_0_0_0    = MakeVersion(4, 0, 0, 0)
	V4_0_0_2    = MakeVersion(4, 0, 0, 2) // Morrowind
	V4_1_0_0    = MakeVersion(4, 1, 0, 0) // one-byte booleans
	V4_1_0_12   = MakeVersion(4, 1, 0, 12)
	V4_1_0_18   = MakeVersion(4, 1, 0, 18)
	V4_2_0_2    = MakeVersion(4, 2, 0, 2)
	V4_2_1_0    = MakeVersion(4, 2, 1, 0)
	V4_2_2_0    = MakeVersion(4, 2, 2, 0)
	V5_0_0_1    = MakeVersion(5, 0, 0, 1) // record type table
	V5_0_0_6    = MakeVersion(5, 0, 0, 6) // record groups
	V10_0_0_0   = MakeVersion(10, 0, 0, 0)
	V10_0_1_0   = MakeVersion(10, 0, 1, 0) // extra data lists
	V10_0_1_2   = MakeVersion(10, 0, 1, 2) // older Oblivion
	V10_0_1_8   = MakeVersion(10, 0, 1, 8) // user version follows
	V10_1_0_0   = MakeVersion(10, 1, 0, 0)
	V10_1_0_101 = MakeVersion(10, 1, 0, 101)
	V10_1_0_103 = MakeVersion(10, 1, 0, 103)
	V10_1_0_104 = MakeVersion(10, 1, 0, 104) // interpolators replace controller data
	V10_1_0_106 = MakeVersion(10, 1, 0, 106)
	V10_1_0_108 = MakeVersion(10, 1, 0, 108)
	V10_1_0_109 = MakeVersion(10, 1, 0, 109)
	V10_1_0_114 = MakeVersion(10, 1, 0, 114)
	V10_2_0_0   = MakeVersion(10, 2, 0, 0)
	V10_4_0_1   = MakeVersion(10, 4, 0, 1)
	V10_4_0_2   = MakeVersion(10, 4, 0, 2)
	V20_0_0_3   = MakeVersion(20, 0, 0, 3)
	V20_0_0_4   = MakeVersion(20, 0, 0, 4) // endianness byte
	V20_0_0_5   = MakeVersion(20, 0, 0, 5) // Oblivion
	V20_1_0_1   = MakeVersion(20, 1, 0, 1) // global string table
	V20_1_0_2   = MakeVersion(20, 1, 0, 2)
	V20_1_0_3   = MakeVersion(20, 1, 0, 3)
	V20_2_0_4   = MakeVersion(20, 2, 0, 4)
	V20_2_0_5   = MakeVersion(20, 2, 0, 5) // record sizes
	V20_2_0_7   = MakeVersion(20, 2, 0, 7) // Fallout 3 / Skyrim
	V20_3_0_4   = MakeVersion(20, 3, 0, 4)
	V20_5_0_4   = MakeVersion(20, 5, 0, 4)
)

// Bethesda stream versions stored in the export info block.
const (
	BethFO3 uint32 = 34
	BethSKY uint32 = 83
	BethSSE uint32 = 100
	BethFO4 uint32 = 130
	BethF76 uint32 = 155
)

// supportedVersions lists the versions whose record layouts are known to parse.
var supportedVersions = map[Version]bool{
	V4_0_0_0:  true,
	V4_0_0_2:  true,
	V10_0_1_2: true,
	V20_0_0_4: true,
	V20_0_0_5: true,
	V20_2_0_7: true,
}

// IsSupported reports whether v is in the allow-list of known-good versions.
func IsSupported(v Version) bool {
	return supportedVersions[v]
}

// magicPrefixes are the identification lines of the two product generations.
var magicPrefixes = []string{
	"NetImmerse File Format",
	"Gamebryo File Format",
}
