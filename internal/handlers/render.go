package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func RenderTemplate(c *gin.Context, tmplName string, data interface{}) {
	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"formatMoney": func(v interface{}) string {
			p := message.NewPrinter(language.English)
			switch val := v.(type) {
			case float64:
				return p.Sprintf("%d", int64(val))
			case int:
				return p.Sprintf("%d", val)
			case string:
				return val
			default:
				return fmt.Sprintf("%v", v)
			}
		},
	}

	lp := filepath.Join("templates", "layout.html")
	fp := filepath.Join("templates", tmplName)

	baseTmpl := template.New("layout").Funcs(funcMap)
	tmpl, err := baseTmpl.ParseFiles(lp, fp)
	if err != nil {
		fmt.Printf("TEMPLATE PARSE ERROR: %v\n", err)
		c.String(http.StatusInternalServerError, "Error loading template: %v", err)
		return
	}

	if err := tmpl.Execute(c.Writer, data); err != nil {
		fmt.Printf("TEMPLATE EXECUTE ERROR: %v\n", err)
		c.String(http.StatusInternalServerError, "Error rendering template: %v", err)
	}
}
