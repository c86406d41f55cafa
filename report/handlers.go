package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/aaltat/robotframework/model"
	"github.com/aaltat/robotframework/result"
)

// fixtureOwner is satisfied by nodes that can carry setup and teardown
// fixtures: suites, tests and keywords.
type fixtureOwner interface {
	Setup() *result.Keyword
	HasSetup() bool
	Teardown() *result.Keyword
	HasTeardown() bool
}

// statusOwner is satisfied by every node embedding status and timing fields.
type statusOwner interface {
	StatusData() *result.StatusInfo
}

// bodyOf returns the body of a node that has one.
func bodyOf(node any) (*result.Body, bool) {
	switch n := node.(type) {
	case *result.Test:
		return n.Body, true
	case *result.Keyword:
		return n.Body, true
	case *result.For:
		return n.Body, true
	case *result.While:
		return n.Body, true
	case *result.Iteration:
		return n.Body, true
	case *result.Group:
		return n.Body, true
	case *result.If:
		return n.Body, true
	case *result.Try:
		return n.Body, true
	case *result.Branch:
		return n.Body, true
	case *result.Var:
		return n.Body, true
	case *result.Return:
		return n.Body, true
	case *result.Continue:
		return n.Body, true
	case *result.Break:
		return n.Body, true
	case *result.Error:
		return n.Body, true
	}
	return nil, false
}

func requireBody(tag string, node any) (*result.Body, error) {
	body, ok := bodyOf(node)
	if !ok {
		return nil, model.NewDataError("invalid element '%s' for result '%s'", tag, model.TypeName(node))
	}
	return body, nil
}

// rootHandler accepts only the outermost document tags. It lives outside
// the handler table because no tag maps to it.
type rootHandler struct {
	baseHandler
}

func newRootHandler() *rootHandler {
	return &rootHandler{newBaseHandler("", "robot", "suite")}
}

func (h *rootHandler) childHandler(tag string) (elementHandler, error) {
	child, err := h.baseHandler.childHandler(tag)
	if err != nil {
		return nil, model.NewDataError("incompatible root element '%s'", tag)
	}
	return child, nil
}

// robotHandler handles the document wrapper element carrying generation
// metadata.
type robotHandler struct {
	baseHandler
}

func newRobotHandler() *robotHandler {
	return &robotHandler{newBaseHandler("robot", "suite", "statistics", "errors")}
}

func (h *robotHandler) start(attrs attributes, node any) (any, error) {
	res, ok := node.(*result.Result)
	if !ok {
		return nil, model.NewDataError("invalid element 'robot' for result '%s'", model.TypeName(node))
	}
	if generator, ok := attrs["generator"]; ok {
		res.Generator = generator
	} else {
		res.Generator = "unknown"
	}
	generated, err := parseGenerationTime(attrs["generated"])
	if err != nil {
		return nil, err
	}
	res.Generated = generated
	if !res.RPASet() {
		res.SetRPA(attrs["rpa"] == "true")
	}
	return res, nil
}

type suiteHandler struct {
	baseHandler
}

func newSuiteHandler() *suiteHandler {
	// "metadata" is accepted for pre-4.0 compatibility.
	return &suiteHandler{newBaseHandler("suite",
		"doc", "metadata", "meta", "status", "kw", "test", "suite")}
}

func (h *suiteHandler) start(attrs attributes, node any) (any, error) {
	switch n := node.(type) {
	case *result.Result:
		// The top-level suite already exists on the result root.
		suite := n.Suite
		suite.Name = attrs["name"]
		suite.Source = attrs["source"]
		suite.RPA = n.RPA()
		return suite, nil
	case *result.Suite:
		return n.CreateSuite(attrs["name"], attrs["source"], n.RPA), nil
	}
	return nil, model.NewDataError("invalid element 'suite' for result '%s'", model.TypeName(node))
}

func (h *suiteHandler) childHandler(tag string) (elementHandler, error) {
	// A status element directly under a suite carries only timing and
	// message; the aggregate suite status is not stored from it.
	if tag == "status" {
		return newStatusHandler(false), nil
	}
	return h.baseHandler.childHandler(tag)
}

type testHandler struct {
	baseHandler
}

func newTestHandler() *testHandler {
	// "tags" is accepted for pre-4.0 compatibility.
	return &testHandler{newBaseHandler("test",
		"doc", "tags", "tag", "timeout", "status", "kw", "if", "for", "try",
		"while", "group", "variable", "return", "break", "continue", "error",
		"msg")}
}

func (h *testHandler) start(attrs attributes, node any) (any, error) {
	suite, ok := node.(*result.Suite)
	if !ok {
		return nil, model.NewDataError("invalid element 'test' for result '%s'", model.TypeName(node))
	}
	lineno := 0
	if raw := attrs["line"]; raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, model.NewDataError("invalid test line number '%s'", raw)
		}
		lineno = parsed
	}
	return suite.CreateTest(attrs["name"], lineno), nil
}

type keywordHandler struct {
	baseHandler
}

func newKeywordHandler() *keywordHandler {
	// "arguments", "assign" and "tags" are accepted for pre-4.0
	// compatibility.
	return &keywordHandler{newBaseHandler("kw",
		"doc", "arguments", "arg", "assign", "var", "tags", "tag", "timeout",
		"status", "msg", "kw", "if", "for", "try", "while", "group",
		"variable", "return", "break", "continue", "error")}
}

func (h *keywordHandler) start(attrs attributes, node any) (any, error) {
	switch strings.ToLower(attrs["type"]) {
	case "":
		return h.createKeyword(attrs, node)
	case "setup":
		return h.createFixture(attrs, node, true)
	case "teardown":
		return h.createFixture(attrs, node, false)
	case "for":
		// Pre-4.0 reports encode loops as typed keywords; translate them
		// into the current node kinds.
		body, err := requireBody("kw", node)
		if err != nil {
			return nil, err
		}
		return body.CreateFor("", "", "", ""), nil
	case "foritem", "iteration":
		body, err := requireBody("kw", node)
		if err != nil {
			return nil, err
		}
		return body.CreateIteration(), nil
	}
	return nil, model.NewDataError("unsupported keyword type '%s'", attrs["type"])
}

func (h *keywordHandler) createKeyword(attrs attributes, node any) (any, error) {
	body, ok := bodyOf(node)
	if !ok {
		suite, ok := node.(*result.Suite)
		if !ok {
			return nil, model.NewDataError("invalid element 'kw' for result '%s'", model.TypeName(node))
		}
		body = suiteLevelBody(suite)
	}
	name, owner, sourceName := keywordAttrs(attrs)
	return body.CreateKeyword(name, owner, sourceName), nil
}

func (h *keywordHandler) createFixture(attrs attributes, node any, setup bool) (any, error) {
	owner, ok := node.(fixtureOwner)
	if !ok {
		return nil, model.NewDataError("invalid element 'kw' for result '%s'", model.TypeName(node))
	}
	kw := owner.Teardown()
	if setup {
		kw = owner.Setup()
	}
	name, kwOwner, sourceName := keywordAttrs(attrs)
	kw.Name = name
	kw.Owner = kwOwner
	kw.SourceName = sourceName
	return kw, nil
}

// keywordAttrs reads the keyword naming attributes. "library" and
// "sourcename" are accepted for pre-7.0 compatibility.
func keywordAttrs(attrs attributes) (name, owner, sourceName string) {
	name = attrs["name"]
	owner = attrs["owner"]
	if owner == "" {
		owner = attrs["library"]
	}
	sourceName = attrs["source_name"]
	if sourceName == "" {
		sourceName = attrs["sourcename"]
	}
	return name, owner, sourceName
}

// suiteLevelBody resolves where a typeless keyword directly under a suite
// belongs. Such keywords are produced outside any named block, most likely
// by a listener: they go into the suite setup when no tests or child suites
// have been seen yet, otherwise into the teardown. A missing fixture is
// synthesized with a placeholder name and a passing status; a real fixture
// element parsed later resets the placeholder attributes but keeps the body.
func suiteLevelBody(suite *result.Suite) *result.Body {
	if len(suite.Tests) > 0 || len(suite.Suites) > 0 {
		teardown := suite.Teardown()
		if !suite.HasTeardown() {
			teardown.Name = "Implicit teardown"
			teardown.Status = result.StatusPass
		}
		return teardown.Body
	}
	setup := suite.Setup()
	if !suite.HasSetup() {
		setup.Name = "Implicit setup"
		setup.Status = result.StatusPass
	}
	return setup.Body
}

type forHandler struct {
	baseHandler
}

func newForHandler() *forHandler {
	return &forHandler{newBaseHandler("for",
		"var", "value", "iter", "status", "doc", "msg", "kw")}
}

func (h *forHandler) start(attrs attributes, node any) (any, error) {
	body, err := requireBody("for", node)
	if err != nil {
		return nil, err
	}
	return body.CreateFor(attrs["flavor"], attrs["start"], attrs["mode"], attrs["fill"]), nil
}

type whileHandler struct {
	baseHandler
}

func newWhileHandler() *whileHandler {
	return &whileHandler{newBaseHandler("while", "iter", "status", "doc", "msg", "kw")}
}

func (h *whileHandler) start(attrs attributes, node any) (any, error) {
	body, err := requireBody("while", node)
	if err != nil {
		return nil, err
	}
	return body.CreateWhile(attrs["condition"], attrs["limit"],
		attrs["on_limit"], attrs["on_limit_message"]), nil
}

type iterationHandler struct {
	baseHandler
}

func newIterationHandler() *iterationHandler {
	return &iterationHandler{newBaseHandler("iter",
		"var", "doc", "status", "kw", "if", "for", "msg", "try", "while",
		"group", "variable", "return", "break", "continue", "error")}
}

func (h *iterationHandler) start(attrs attributes, node any) (any, error) {
	body, err := requireBody("iter", node)
	if err != nil {
		return nil, err
	}
	return body.CreateIteration(), nil
}

type groupHandler struct {
	baseHandler
}

func newGroupHandler() *groupHandler {
	return &groupHandler{newBaseHandler("group",
		"status", "kw", "if", "for", "try", "while", "group", "msg",
		"variable", "return", "break", "continue", "error")}
}

func (h *groupHandler) start(attrs attributes, node any) (any, error) {
	body, err := requireBody("group", node)
	if err != nil {
		return nil, err
	}
	return body.CreateGroup(attrs["name"]), nil
}

type ifHandler struct {
	baseHandler
}

func newIfHandler() *ifHandler {
	return &ifHandler{newBaseHandler("if", "branch", "status", "doc", "msg", "kw")}
}

func (h *ifHandler) start(attrs attributes, node any) (any, error) {
	body, err := requireBody("if", node)
	if err != nil {
		return nil, err
	}
	return body.CreateIf(), nil
}

type branchHandler struct {
	baseHandler
}

func newBranchHandler() *branchHandler {
	return &branchHandler{newBaseHandler("branch",
		"status", "kw", "if", "for", "try", "while", "group", "msg", "doc",
		"variable", "return", "pattern", "break", "continue", "error")}
}

func (h *branchHandler) start(attrs attributes, node any) (any, error) {
	body, err := requireBody("branch", node)
	if err != nil {
		return nil, err
	}
	config := make(map[string]any, len(attrs))
	for name, value := range attrs {
		// "variable" was renamed to "assign" in 7.0.
		if name == "variable" {
			name = "assign"
		}
		config[name] = value
	}
	return body.CreateBranch(config)
}

type tryHandler struct {
	baseHandler
}

func newTryHandler() *tryHandler {
	return &tryHandler{newBaseHandler("try", "branch", "status", "doc", "msg", "kw")}
}

func (h *tryHandler) start(attrs attributes, node any) (any, error) {
	body, err := requireBody("try", node)
	if err != nil {
		return nil, err
	}
	return body.CreateTry(), nil
}

type patternHandler struct {
	baseHandler
}

func newPatternHandler() *patternHandler {
	return &patternHandler{newBaseHandler("pattern")}
}

func (h *patternHandler) end(attrs attributes, text string, node any) error {
	branch, ok := node.(*result.Branch)
	if !ok {
		return model.NewDataError("invalid element 'pattern' for result '%s'", model.TypeName(node))
	}
	branch.AddPatterns(text)
	return nil
}

type variableHandler struct {
	baseHandler
}

func newVariableHandler() *variableHandler {
	return &variableHandler{newBaseHandler("variable", "var", "status", "msg", "kw")}
}

func (h *variableHandler) start(attrs attributes, node any) (any, error) {
	body, err := requireBody("variable", node)
	if err != nil {
		return nil, err
	}
	var separator *string
	if raw, ok := attrs["separator"]; ok {
		separator = &raw
	}
	return body.CreateVar(attrs["name"], attrs["scope"], separator), nil
}

type returnHandler struct {
	baseHandler
}

func newReturnHandler() *returnHandler {
	return &returnHandler{newBaseHandler("return", "value", "status", "msg", "kw")}
}

func (h *returnHandler) start(attrs attributes, node any) (any, error) {
	body, err := requireBody("return", node)
	if err != nil {
		return nil, err
	}
	return body.CreateReturn(), nil
}

type continueHandler struct {
	baseHandler
}

func newContinueHandler() *continueHandler {
	return &continueHandler{newBaseHandler("continue", "status", "msg", "kw")}
}

func (h *continueHandler) start(attrs attributes, node any) (any, error) {
	body, err := requireBody("continue", node)
	if err != nil {
		return nil, err
	}
	return body.CreateContinue(), nil
}

type breakHandler struct {
	baseHandler
}

func newBreakHandler() *breakHandler {
	return &breakHandler{newBaseHandler("break", "status", "msg", "kw")}
}

func (h *breakHandler) start(attrs attributes, node any) (any, error) {
	body, err := requireBody("break", node)
	if err != nil {
		return nil, err
	}
	return body.CreateBreak(), nil
}

type errorHandler struct {
	baseHandler
}

func newErrorHandler() *errorHandler {
	return &errorHandler{newBaseHandler("error", "status", "msg", "value", "kw")}
}

func (h *errorHandler) start(attrs attributes, node any) (any, error) {
	body, err := requireBody("error", node)
	if err != nil {
		return nil, err
	}
	return body.CreateError(), nil
}

type messageHandler struct {
	baseHandler
}

func newMessageHandler() *messageHandler {
	return &messageHandler{newBaseHandler("msg")}
}

func (h *messageHandler) end(attrs attributes, text string, node any) error {
	body, err := requireBody("msg", node)
	if err != nil {
		return err
	}
	text, level, html, timestamp, err := messageContent(attrs, text)
	if err != nil {
		return err
	}
	body.CreateMessage(text, level, html, timestamp)
	return nil
}

// errorsMessageHandler materializes messages inside the execution errors
// section. It is returned dynamically by the errors handler and owns no tag
// of its own.
type errorsMessageHandler struct {
	baseHandler
}

func newErrorsMessageHandler() *errorsMessageHandler {
	return &errorsMessageHandler{newBaseHandler("msg")}
}

func (h *errorsMessageHandler) end(attrs attributes, text string, node any) error {
	errors, ok := node.(*result.ExecutionErrors)
	if !ok {
		return model.NewDataError("invalid element 'msg' for result '%s'", model.TypeName(node))
	}
	text, level, html, timestamp, err := messageContent(attrs, text)
	if err != nil {
		return err
	}
	errors.CreateMessage(text, level, html, timestamp)
	return nil
}

func messageContent(attrs attributes, text string) (string, result.MessageLevel, bool, *time.Time, error) {
	timestamp, err := messageTimestamp(attrs)
	if err != nil {
		return "", "", false, nil, err
	}
	level := result.MessageLevel(attrs["level"])
	if level == "" {
		level = result.LevelInfo
	}
	// "yes" is a pre-4.0 spelling of the html flag.
	html := attrs["html"] == "true" || attrs["html"] == "yes"
	return text, level, html, timestamp, nil
}

type statusHandler struct {
	baseHandler
	setStatus bool
}

func newStatusHandler(setStatus bool) *statusHandler {
	return &statusHandler{newBaseHandler("status"), setStatus}
}

func (h *statusHandler) end(attrs attributes, text string, node any) error {
	owner, ok := node.(statusOwner)
	if !ok {
		return model.NewDataError("invalid element 'status' for result '%s'", model.TypeName(node))
	}
	status := owner.StatusData()
	if h.setStatus {
		value := attrs["status"]
		if value == "" {
			value = string(result.StatusFail)
		}
		status.Status = result.StatusValue(value)
	}
	if elapsed, ok := attrs["elapsed"]; ok {
		seconds, err := strconv.ParseFloat(elapsed, 64)
		if err != nil {
			return model.NewDataError("invalid elapsed time '%s'", elapsed)
		}
		status.SetElapsed(secondsToDuration(seconds))
		start, err := parseOptionalTimestamp(attrs["start"])
		if err != nil {
			return err
		}
		status.StartTime = start
	} else {
		start, err := parseLegacyTimestamp(attrs["starttime"])
		if err != nil {
			return err
		}
		end, err := parseLegacyTimestamp(attrs["endtime"])
		if err != nil {
			return err
		}
		status.StartTime = start
		status.EndTime = end
	}
	if text != "" {
		status.Message = text
	}
	return nil
}

type docHandler struct {
	baseHandler
}

func newDocHandler() *docHandler {
	return &docHandler{newBaseHandler("doc")}
}

func (h *docHandler) end(attrs attributes, text string, node any) error {
	switch n := node.(type) {
	case *result.Suite:
		n.Doc = text
	case *result.Test:
		n.Doc = text
	case *result.Keyword:
		n.Doc = text
	default:
		// Pre-7.0 control structures can have a doc element holding
		// information about flattening or removing data; nowadays that
		// information lives in the message.
		owner, ok := node.(statusOwner)
		if !ok {
			return model.NewDataError("invalid element 'doc' for result '%s'", model.TypeName(node))
		}
		owner.StatusData().Message = text
	}
	return nil
}

// metadataHandler handles the pre-4.0 metadata wrapper element.
type metadataHandler struct {
	baseHandler
}

func newMetadataHandler() *metadataHandler {
	return &metadataHandler{newBaseHandler("metadata", "item")}
}

// metadataItemHandler handles pre-4.0 metadata items.
type metadataItemHandler struct {
	baseHandler
}

func newMetadataItemHandler() *metadataItemHandler {
	return &metadataItemHandler{newBaseHandler("item")}
}

func (h *metadataItemHandler) end(attrs attributes, text string, node any) error {
	return setMetadata(attrs, text, node, "item")
}

type metaHandler struct {
	baseHandler
}

func newMetaHandler() *metaHandler {
	return &metaHandler{newBaseHandler("meta")}
}

func (h *metaHandler) end(attrs attributes, text string, node any) error {
	return setMetadata(attrs, text, node, "meta")
}

func setMetadata(attrs attributes, text string, node any, tag string) error {
	suite, ok := node.(*result.Suite)
	if !ok {
		return model.NewDataError("invalid element '%s' for result '%s'", tag, model.TypeName(node))
	}
	suite.Metadata.Set(attrs["name"], text)
	return nil
}

// tagsHandler handles the pre-4.0 tags wrapper element.
type tagsHandler struct {
	baseHandler
}

func newTagsHandler() *tagsHandler {
	return &tagsHandler{newBaseHandler("tags", "tag")}
}

type tagHandler struct {
	baseHandler
}

func newTagHandler() *tagHandler {
	return &tagHandler{newBaseHandler("tag")}
}

func (h *tagHandler) end(attrs attributes, text string, node any) error {
	switch n := node.(type) {
	case *result.Test:
		n.Tags.Add(text)
	case *result.Keyword:
		n.Tags.Add(text)
	default:
		return model.NewDataError("invalid element 'tag' for result '%s'", model.TypeName(node))
	}
	return nil
}

type timeoutHandler struct {
	baseHandler
}

func newTimeoutHandler() *timeoutHandler {
	return &timeoutHandler{newBaseHandler("timeout")}
}

func (h *timeoutHandler) end(attrs attributes, text string, node any) error {
	switch n := node.(type) {
	case *result.Test:
		n.Timeout = attrs["value"]
	case *result.Keyword:
		n.Timeout = attrs["value"]
	default:
		return model.NewDataError("invalid element 'timeout' for result '%s'", model.TypeName(node))
	}
	return nil
}

// assignHandler handles the pre-4.0 assign wrapper element.
type assignHandler struct {
	baseHandler
}

func newAssignHandler() *assignHandler {
	return &assignHandler{newBaseHandler("assign", "var")}
}

// varValueHandler handles text-only var elements, whose meaning depends on
// the node they appear under.
type varValueHandler struct {
	baseHandler
}

func newVarValueHandler() *varValueHandler {
	return &varValueHandler{newBaseHandler("var")}
}

func (h *varValueHandler) end(attrs attributes, text string, node any) error {
	switch n := node.(type) {
	case *result.Keyword:
		n.AddAssign(text)
	case *result.For:
		n.AddAssign(text)
	case *result.Iteration:
		n.BindAssign(attrs["name"], text)
	case *result.Var:
		n.AddValue(text)
	default:
		return model.NewDataError("invalid element 'var' for result '%s'", model.TypeName(node))
	}
	return nil
}

// argumentsHandler handles the pre-4.0 arguments wrapper element.
type argumentsHandler struct {
	baseHandler
}

func newArgumentsHandler() *argumentsHandler {
	return &argumentsHandler{newBaseHandler("arguments", "arg")}
}

type argumentHandler struct {
	baseHandler
}

func newArgumentHandler() *argumentHandler {
	return &argumentHandler{newBaseHandler("arg")}
}

func (h *argumentHandler) end(attrs attributes, text string, node any) error {
	kw, ok := node.(*result.Keyword)
	if !ok {
		return model.NewDataError("invalid element 'arg' for result '%s'", model.TypeName(node))
	}
	kw.AddArgs(text)
	return nil
}

type valueHandler struct {
	baseHandler
}

func newValueHandler() *valueHandler {
	return &valueHandler{newBaseHandler("value")}
}

func (h *valueHandler) end(attrs attributes, text string, node any) error {
	switch n := node.(type) {
	case *result.For:
		n.AddValues(text)
	case *result.Return:
		n.AddValues(text)
	case *result.Error:
		n.AddValues(text)
	default:
		return model.NewDataError("invalid element 'value' for result '%s'", model.TypeName(node))
	}
	return nil
}

type errorsHandler struct {
	baseHandler
}

func newErrorsHandler() *errorsHandler {
	return &errorsHandler{newBaseHandler("errors")}
}

func (h *errorsHandler) start(attrs attributes, node any) (any, error) {
	res, ok := node.(*result.Result)
	if !ok {
		return nil, model.NewDataError("invalid element 'errors' for result '%s'", model.TypeName(node))
	}
	return res.Errors, nil
}

func (h *errorsHandler) childHandler(tag string) (elementHandler, error) {
	return newErrorsMessageHandler(), nil
}

// statisticsHandler swallows the statistics section: it carries no state
// needed for reconstruction, so the subtree is suppressed. The grammar is
// still enforced; only statistics elements are permitted beneath it.
type statisticsHandler struct {
	baseHandler
}

func newStatisticsHandler() *statisticsHandler {
	return &statisticsHandler{newBaseHandler("statistics", "total", "tag", "suite", "stat")}
}

func (h *statisticsHandler) start(attrs attributes, node any) (any, error) {
	return nil, nil
}

func (h *statisticsHandler) childHandler(tag string) (elementHandler, error) {
	if _, ok := h.children[tag]; !ok {
		return nil, model.NewDataError("incompatible child element '%s' for '%s'", tag, h.name)
	}
	return h, nil
}
