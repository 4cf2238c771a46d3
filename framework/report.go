package framework

import (
	"io"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ResultsAsValue converts results to a JSON-compatible value, one object per test.
func ResultsAsValue(results Results) ldvalue.Value {
	tests := ldvalue.ArrayBuild()
	for _, r := range results.Tests {
		status := "passed"
		switch {
		case r.Skipped:
			status = "skipped"
		case len(r.Errors) != 0 || isFailure(results, r):
			status = "failed"
		}
		obj := ldvalue.ObjectBuild().
			Set("suite", ldvalue.String(r.TestID.Suite)).
			Set("name", ldvalue.String(r.TestID.Name)).
			Set("status", ldvalue.String(status))
		if r.Info.File != "" {
			obj.Set("file", ldvalue.String(r.Info.File)).Set("line", ldvalue.Int(r.Info.Line))
		}
		if r.Info.Tag != "" {
			obj.Set("tag", ldvalue.String(r.Info.Tag))
		}
		if r.SkipReason != "" {
			obj.Set("skipReason", ldvalue.String(r.SkipReason))
		}
		if len(r.Errors) != 0 {
			errs := ldvalue.ArrayBuild()
			for _, err := range r.Errors {
				errs.Add(ldvalue.String(err.Error()))
			}
			obj.Set("errors", errs.Build())
		}
		tests.Add(obj.Build())
	}
	return ldvalue.ObjectBuild().
		Set("ok", ldvalue.Bool(results.OK())).
		Set("total", ldvalue.Int(len(results.Tests))).
		Set("failed", ldvalue.Int(len(results.Failures))).
		Set("skipped", ldvalue.Int(len(results.Skipped))).
		Set("tests", tests.Build()).
		Build()
}

func isFailure(results Results, r TestResult) bool {
	for _, f := range results.Failures {
		if f.TestID == r.TestID && f.Info == r.Info {
			return true
		}
	}
	return false
}

// WriteJSONReport writes the results as a single JSON document followed by a newline.
func WriteJSONReport(w io.Writer, results Results) error {
	_, err := io.WriteString(w, ResultsAsValue(results).JSONString()+"\n")
	return err
}
