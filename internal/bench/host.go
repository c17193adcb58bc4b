package bench

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// HostFeatures lists the architecture and the SIMD extensions of the host,
// so throughput numbers from different machines can be told apart.
func HostFeatures() []string {
	features := []string{runtime.GOARCH}

	switch runtime.GOARCH {
	case "amd64", "386":
		add := func(name string, ok bool) {
			if ok {
				features = append(features, name)
			}
		}
		add("sse4.1", cpu.X86.HasSSE41)
		add("avx", cpu.X86.HasAVX)
		add("avx2", cpu.X86.HasAVX2)
		add("fma", cpu.X86.HasFMA)
		add("avx512f", cpu.X86.HasAVX512F)
	case "arm64":
		if cpu.ARM64.HasASIMD {
			features = append(features, "asimd")
		}
		if cpu.ARM64.HasFPHP {
			features = append(features, "fphp")
		}
	}

	return features
}
