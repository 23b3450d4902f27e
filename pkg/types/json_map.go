package types

// StringMap is a string-to-string JSON object persisted through the GORM json
// serializer, used for variant option sets like {"color": "black"}.
type StringMap map[string]string

// JSONMap is a free-form JSON object for loosely structured payload fields.
type JSONMap map[string]any
