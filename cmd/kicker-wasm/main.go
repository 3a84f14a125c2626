//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"sync"
	"syscall/js"

	"github.com/uks22/penalty-kick/internal/engine"
)

var (
	startFnOnce sync.Once
	trainerMu   sync.Mutex
	training    bool
	onResult    js.Value
)

func main() {
	registerCallbacks()
	// Prevent the program from exiting.
	select {}
}

func registerCallbacks() {
	startFnOnce.Do(func() {
		js.Global().Set("kickerRegisterResultHandler", js.FuncOf(registerResultHandler))
		js.Global().Set("kickerStartTraining", js.FuncOf(startTraining))
	})
}

func registerResultHandler(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 || args[0].Type() != js.TypeFunction {
		fmt.Println("registerResultHandler requires a function argument")
		return nil
	}
	onResult = args[0]
	return nil
}

// startTraining takes a JSON engine.Config. A run cannot be interrupted, so
// a second start while one is in flight is refused.
func startTraining(this js.Value, args []js.Value) interface{} {
	if len(args) == 0 {
		fmt.Println("startTraining requires a JSON config string")
		return nil
	}
	variant := engine.VariantLine
	var probe struct {
		Variant engine.Variant `json:"variant"`
	}
	if err := json.Unmarshal([]byte(args[0].String()), &probe); err == nil && probe.Variant != "" {
		variant = probe.Variant
	}
	cfg := engine.DefaultConfig(variant)
	if err := json.Unmarshal([]byte(args[0].String()), &cfg); err != nil {
		fmt.Printf("invalid config: %v\n", err)
		return nil
	}
	if onResult.IsUndefined() || onResult.IsNull() {
		fmt.Println("result handler not registered")
		return nil
	}

	trainerMu.Lock()
	if training {
		trainerMu.Unlock()
		fmt.Println("training already in progress")
		return nil
	}
	training = true
	trainerMu.Unlock()

	trainer, err := engine.NewTrainer(cfg)
	if err != nil {
		finish()
		onResult.Invoke(errorToJS(err))
		return nil
	}
	space := trainer.Space()
	trainer.OnOpponent(func(res engine.OpponentResult) {
		onResult.Invoke(opponentToJS(space, res))
	})
	go func() {
		defer finish()
		result, err := trainer.Run()
		if err != nil {
			onResult.Invoke(errorToJS(err))
			return
		}
		onResult.Invoke(resultToJS(result))
	}()
	return nil
}

func finish() {
	trainerMu.Lock()
	training = false
	trainerMu.Unlock()
}

func floatsToJS(values []float64) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func gridToJS(space engine.ActionSpace, values []float64) []interface{} {
	rows, cols := space.Dims()
	out := make([]interface{}, rows)
	for r := 0; r < rows; r++ {
		out[r] = floatsToJS(values[r*cols : (r+1)*cols])
	}
	return out
}

func opponentToJS(space engine.ActionSpace, res engine.OpponentResult) js.Value {
	payload := map[string]interface{}{
		"status":       "opponent",
		"index":        res.Index,
		"keeper":       floatsToJS(res.Keeper),
		"alpha":        res.Schedule.Alpha,
		"epsilon":      res.Schedule.Epsilon,
		"retention":    res.Schedule.Retention,
		"best":         res.Best.String(),
		"distribution": gridToJS(space, res.Distribution),
	}
	return js.ValueOf(payload)
}

func resultToJS(res *engine.Result) js.Value {
	final := make(map[string]interface{}, len(res.Mean))
	for k, v := range res.FinalMap(engine.DefaultDecimals) {
		final[k] = v
	}
	payload := map[string]interface{}{
		"status":    "done",
		"runId":     res.RunID.String(),
		"variant":   string(res.Variant),
		"seed":      fmt.Sprintf("%d", res.Seed),
		"opponents": len(res.Opponents),
		"mean":      gridToJS(res.Space, res.Mean),
		"final":     final,
		"best":      res.Best().String(),
		"goalMass":  res.GoalMass(),
	}
	return js.ValueOf(payload)
}

func errorToJS(err error) js.Value {
	return js.ValueOf(map[string]interface{}{
		"status": "error",
		"error":  err.Error(),
	})
}
