package static

import (
	"errors"
	"fmt"

	"github.com/slidelens/slidelens/internal/types"
)

const (
	PDF_ENGINE_POPPLER = "poppler"
	PDF_ENGINE_NATIVE  = "native"

	// reasoning model used for every text prompt of the visual analyzer
	REASONING_MODEL = "IlyaGusev/saiga_llama3_8b"
)

var ErrUnknownModel = errors.New("unknown model id")

var llmModels = []types.ModelInfo{
	{ID: 1, ModelName: "IlyaGusev/saiga_llama3_8b", DevLevel: "hard"},
	{ID: 2, ModelName: "distilgpt2", DevLevel: "light"},
}

var vlmModels = []types.ModelInfo{
	{ID: 1, ModelName: "Salesforce/blip2-flan-t5-xl", DevLevel: "light"},
	{ID: 2, ModelName: "microsoft/Florence-2-large", DevLevel: "medium"},
	{ID: 3, ModelName: "Qwen/Qwen2-VL-7B-Instruct", DevLevel: "medium"},
}

func GetLLMModels() []types.ModelInfo {
	return append([]types.ModelInfo(nil), llmModels...)
}

func GetVLMModels() []types.ModelInfo {
	return append([]types.ModelInfo(nil), vlmModels...)
}

func LookupLLMModel(id int) (types.ModelInfo, error) {
	return lookupModel(llmModels, "llm", id)
}

func LookupVLMModel(id int) (types.ModelInfo, error) {
	return lookupModel(vlmModels, "vlm", id)
}

func lookupModel(models []types.ModelInfo, kind string, id int) (types.ModelInfo, error) {
	for _, m := range models {
		if m.ID == id {
			return m, nil
		}
	}
	return types.ModelInfo{}, fmt.Errorf("%w: %s model %d", ErrUnknownModel, kind, id)
}
