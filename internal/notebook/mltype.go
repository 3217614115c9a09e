package notebook

import (
	"strings"

	"github.com/praykar/autonotebook/internal/model"
)

// mlTypeKeywords maps each detectable technique to the code keywords that
// indicate it. Matching is case-insensitive over code cell sources.
var mlTypeKeywords = []struct {
	mlType   model.MLType
	keywords []string
}{
	{model.MLTypeClassification, []string{"sklearn.classification", "logistic_regression", "logisticregression", "classification_report"}},
	{model.MLTypeRegression, []string{"sklearn.regression", "linear_regression", "linearregression"}},
	{model.MLTypeNeuralNetwork, []string{"tensorflow", "keras", "pytorch", "torch.nn"}},
	{model.MLTypeClustering, []string{"kmeans", "dbscan"}},
}

// detectMLType classifies the notebook's machine-learning technique by
// scanning code cells in order and returning the first matching type.
// Notebooks with no recognizable keywords are MLTypeUnknown.
func detectMLType(cells []model.Cell) model.MLType {
	for _, cell := range cells {
		if cell.Type != model.CellTypeCode {
			continue
		}

		source := strings.ToLower(cell.Source)
		for _, entry := range mlTypeKeywords {
			for _, kw := range entry.keywords {
				if strings.Contains(source, kw) {
					return entry.mlType
				}
			}
		}
	}
	return model.MLTypeUnknown
}
