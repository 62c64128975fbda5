package helper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
)

// ModelDir is the directory models are downloaded into
var ModelDir = "./models"

// PrepareModel downloads the model if it doesn't exist and returns the model path.
// The local directory is the model name with "/" replaced by "_".
// onnxFilePath selects a specific onnx file inside the repository and may be empty.
func PrepareModel(modelName string, onnxFilePath string) (string, error) {
	modelPath := filepath.Join(ModelDir, strings.ReplaceAll(modelName, "/", "_"))

	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		if err := os.MkdirAll(ModelDir, 0750); err != nil {
			return "", fmt.Errorf("failed to create model directory: %w", err)
		}
		downloadOptions := hugot.NewDownloadOptions()
		if onnxFilePath != "" {
			downloadOptions.OnnxFilePath = onnxFilePath
		}
		downloadedPath, err := hugot.DownloadModel(modelName, ModelDir, downloadOptions)
		if err != nil {
			return "", fmt.Errorf("failed to download model %s: %w", modelName, err)
		}
		modelPath = downloadedPath
	} else if err != nil {
		return "", fmt.Errorf("failed to stat model directory: %w", err)
	}

	return modelPath, nil
}
