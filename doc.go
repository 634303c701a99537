// Package campform gathers the camp registration form building blocks behind
// a few constructors: the camp data type registry used by the form builder,
// the data provider registry used to display answers, and the expression
// evaluator with the camp functions registered.
//
// Most callers only need:
//
//	types := campform.NewTypeRegistry()
//	store, err := campform.LoadSurveys(os.DirFS("forms"), types)
//	if err != nil {
//	  return err
//	}
//	form, _ := store.Survey("summer")
//	record, err := campdata.Extract(&form, answers, campdata.WithEvaluator(campform.NewEvaluator()))
package campform
