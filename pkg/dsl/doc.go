/*
Package dsl provides a fluent Go builder for command catalogs and autoplay scripts.

It is an alternative to catalog and script files: useful for tests, embedded demos
and anything that wants compile-time checks instead of YAML.

Example usage:

	cat, err := dsl.New().
		Add("deploy").Describe("Ship it").
			Info("◐ Uploading...").
			Success("✓ Deployed").
		Add("status").Describe("Show status").
			Output("all good").
		Done().
		Suggest("deploy", "status").
		Build()

	lines, err := dsl.Script().
		Line(domain.KindComment, "# Ship a build", 400*time.Millisecond).
		Type("deploy", 300*time.Millisecond).
		Line(domain.KindSuccess, "✓ Deployed", 0).
		Build()
*/
package dsl
