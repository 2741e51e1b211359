package canvasrenderer

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将每页的布局输出为 JSON，便于调试或可视化。
func WriteDebugJSON(placements []Placement, path string) error {
	if len(placements) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(placements, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
