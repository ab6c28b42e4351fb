package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/evanw/esbuild/pkg/api"
)

const outDir = "web/assets/js"

func main() {
	if err := buildWasm(); err != nil {
		log.Fatalf("wasm build failed: %s", err)
	}

	buildOpts := api.BuildOptions{
		EntryPointsAdvanced: []api.EntryPoint{
			{
				InputPath:  "web/frontend/index.js",
				OutputPath: "index",
			},
			{
				InputPath:  "web/frontend/worker/worker.js",
				OutputPath: "worker",
			},
			{
				InputPath:  wasmExecPath(),
				OutputPath: "wasm_exec",
			},
		},
		External: []string{"./wasm_exec.js"},
		Outdir:   outDir,
		Bundle:   true,
		Platform: api.PlatformBrowser,
		Format:   api.FormatESModule,
		Target:   api.ESNext,
		Write:    true,
	}
	result := api.Build(buildOpts)
	if len(result.Errors) != 0 {
		log.Fatalf("esbuild failed (%v)", result.Errors)
	}
}

func buildWasm() error {
	cmd := exec.Command("go", "build", "-o", filepath.Join(outDir, "main.wasm"), "./cmd/wasm")
	cmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// wasm_exec.js moved from misc/wasm to lib/wasm in go1.24
func wasmExecPath() string {
	p := fmt.Sprintf("%s/lib/wasm/wasm_exec.js", runtime.GOROOT())
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return fmt.Sprintf("%s/misc/wasm/wasm_exec.js", runtime.GOROOT())
}
