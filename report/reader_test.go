package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaltat/robotframework/result"
)

func TestReadFullDocument(t *testing.T) {
	res, err := ReadString(`
<robot generator="Robot 7.0 (Python 3.12.0 on linux)" generated="2023-01-01T12:00:00.000000" rpa="false" schemaversion="5">
<suite id="s1" name="Root" source="/tmp/root.robot">
<test id="s1-t1" name="First" line="3">
<kw name="Log" owner="BuiltIn">
<var>${x}</var>
<arg>Hello</arg>
<doc>Logs things.</doc>
<msg time="2023-01-01T12:00:00.001000" level="INFO">Hello</msg>
<status status="PASS" start="2023-01-01T12:00:00.000000" elapsed="0.001"/>
</kw>
<doc>Test documentation.</doc>
<tag>smoke</tag>
<timeout value="1 minute"/>
<status status="PASS" start="2023-01-01T12:00:00.000000" elapsed="0.002"/>
</test>
<status start="2023-01-01T12:00:00.000000" elapsed="0.003"/>
</suite>
</robot>`)
	require.NoError(t, err)

	assert.Equal(t, "Robot 7.0 (Python 3.12.0 on linux)", res.Generator)
	require.NotNil(t, res.Generated)
	assert.Equal(t, 2023, res.Generated.Year())
	assert.True(t, res.RPASet())
	assert.False(t, res.RPA())

	suite := res.Suite
	assert.Equal(t, "Root", suite.Name)
	assert.Equal(t, "/tmp/root.robot", suite.Source)
	require.NotNil(t, suite.StartTime)
	assert.Equal(t, 3*time.Millisecond, suite.ElapsedTime())

	require.Len(t, suite.Tests, 1)
	test := suite.Tests[0]
	assert.Equal(t, "First", test.Name)
	assert.Equal(t, 3, test.LineNo)
	assert.Equal(t, "Test documentation.", test.Doc)
	assert.Equal(t, []string{"smoke"}, test.Tags.List())
	assert.Equal(t, "1 minute", test.Timeout)
	assert.Equal(t, result.StatusPass, test.Status)
	assert.Equal(t, 2*time.Millisecond, test.ElapsedTime())

	require.Equal(t, 1, test.Body.Len())
	kw := test.Body.Items()[0].(*result.Keyword)
	assert.Equal(t, "Log", kw.Name)
	assert.Equal(t, "BuiltIn", kw.Owner)
	assert.Equal(t, "BuiltIn.Log", kw.FullName())
	assert.Equal(t, []string{"Hello"}, kw.Args)
	assert.Equal(t, []string{"${x}"}, kw.Assign)
	assert.Equal(t, "Logs things.", kw.Doc)
	assert.Equal(t, result.StatusPass, kw.Status)

	require.Equal(t, 1, kw.Body.Len())
	msg := kw.Body.Items()[0].(*result.Message)
	assert.Equal(t, "Hello", msg.Text)
	assert.Equal(t, result.LevelInfo, msg.Level)
	require.NotNil(t, msg.Timestamp)
	assert.Equal(t, 1*time.Millisecond, time.Duration(msg.Timestamp.Nanosecond()))
}

func TestReadSuiteWithoutRobotWrapper(t *testing.T) {
	res, err := ReadString(`<suite name="Bare"><status/></suite>`)
	require.NoError(t, err)

	assert.Equal(t, "Bare", res.Suite.Name)
	assert.Equal(t, "unknown", res.Generator)
}

func TestReadGeneratorDefaultsToUnknown(t *testing.T) {
	res, err := ReadString(`<robot><suite name="Root"/></robot>`)
	require.NoError(t, err)

	assert.Equal(t, "unknown", res.Generator)
}

func TestReadLegacyGenerationTime(t *testing.T) {
	res, err := ReadString(`<robot generated="20230101 12:00:00.001"><suite name="Root"/></robot>`)
	require.NoError(t, err)

	require.NotNil(t, res.Generated)
	expected := time.Date(2023, 1, 1, 12, 0, 0, 1000000, time.UTC)
	assert.True(t, res.Generated.Equal(expected))
}

func TestReadLegacyStatusTimestamps(t *testing.T) {
	res, err := ReadString(`
<robot>
<suite name="Root">
<test name="First">
<status status="PASS" starttime="20230101 12:00:01.000" endtime="20230101 12:00:02.500"/>
</test>
</suite>
</robot>`)
	require.NoError(t, err)

	test := res.Suite.Tests[0]
	require.NotNil(t, test.StartTime)
	require.NotNil(t, test.EndTime)
	assert.Equal(t, 1500*time.Millisecond, test.ElapsedTime())
}

func TestReadLegacyTimestampWithoutMillis(t *testing.T) {
	res, err := ReadString(`
<robot>
<suite name="Root">
<test name="First">
<status status="PASS" starttime="20230101 12:00:01" endtime="N/A"/>
</test>
</suite>
</robot>`)
	require.NoError(t, err)

	test := res.Suite.Tests[0]
	require.NotNil(t, test.StartTime)
	expected := time.Date(2023, 1, 1, 12, 0, 1, 0, time.UTC)
	assert.True(t, test.StartTime.Equal(expected))
	assert.Nil(t, test.EndTime)
}

func TestReadStatusDefaultsToFail(t *testing.T) {
	res, err := ReadString(`
<robot>
<suite name="Root">
<test name="First">
<status/>
</test>
</suite>
</robot>`)
	require.NoError(t, err)

	assert.Equal(t, result.StatusFail, res.Suite.Tests[0].Status)
}

func TestReadStatusMessage(t *testing.T) {
	res, err := ReadString(`
<robot>
<suite name="Root">
<test name="First">
<status status="FAIL">Expected failure</status>
</test>
</suite>
</robot>`)
	require.NoError(t, err)

	test := res.Suite.Tests[0]
	assert.Equal(t, result.StatusFail, test.Status)
	assert.Equal(t, "Expected failure", test.Message)
}

func TestReadExplicitFixtures(t *testing.T) {
	res, err := ReadString(`
<robot>
<suite name="Root">
<kw type="setup" name="Connect" owner="Remote">
<status status="PASS"/>
</kw>
<test name="First">
<kw type="teardown" name="Cleanup">
<status status="PASS"/>
</kw>
<status status="PASS"/>
</test>
<kw type="teardown" name="Disconnect">
<status status="PASS"/>
</kw>
</suite>
</robot>`)
	require.NoError(t, err)

	suite := res.Suite
	require.True(t, suite.HasSetup())
	assert.Equal(t, "Connect", suite.Setup().Name)
	assert.Equal(t, "Remote", suite.Setup().Owner)
	require.True(t, suite.HasTeardown())
	assert.Equal(t, "Disconnect", suite.Teardown().Name)

	test := suite.Tests[0]
	require.True(t, test.HasTeardown())
	assert.Equal(t, "Cleanup", test.Teardown().Name)
	assert.False(t, test.HasSetup())
}

func TestReadImplicitSuiteSetup(t *testing.T) {
	res, err := ReadString(`
<robot>
<suite name="Root">
<kw name="Listener Keyword">
<status status="PASS"/>
</kw>
<test name="First">
<status status="PASS"/>
</test>
</suite>
</robot>`)
	require.NoError(t, err)

	suite := res.Suite
	require.True(t, suite.HasSetup())
	setup := suite.Setup()
	assert.Equal(t, "Implicit setup", setup.Name)
	assert.Equal(t, result.StatusPass, setup.Status)
	require.Equal(t, 1, setup.Body.Len())
	assert.Equal(t, "Listener Keyword", setup.Body.Items()[0].(*result.Keyword).Name)
	assert.False(t, suite.HasTeardown())
}

func TestReadImplicitSuiteTeardown(t *testing.T) {
	res, err := ReadString(`
<robot>
<suite name="Root">
<test name="First">
<status status="PASS"/>
</test>
<kw name="Listener Keyword">
<status status="PASS"/>
</kw>
</suite>
</robot>`)
	require.NoError(t, err)

	suite := res.Suite
	assert.False(t, suite.HasSetup())
	require.True(t, suite.HasTeardown())
	teardown := suite.Teardown()
	assert.Equal(t, "Implicit teardown", teardown.Name)
	require.Equal(t, 1, teardown.Body.Len())
}

func TestReadExplicitFixtureKeepsImplicitBody(t *testing.T) {
	res, err := ReadString(`
<robot>
<suite name="Root">
<kw name="Listener Keyword">
<status status="PASS"/>
</kw>
<kw type="setup" name="Real Setup">
<status status="PASS"/>
</kw>
<test name="First">
<status status="PASS"/>
</test>
</suite>
</robot>`)
	require.NoError(t, err)

	setup := res.Suite.Setup()
	assert.Equal(t, "Real Setup", setup.Name)
	require.Equal(t, 1, setup.Body.Len())
	assert.Equal(t, "Listener Keyword", setup.Body.Items()[0].(*result.Keyword).Name)
}

func TestReadControlStructures(t *testing.T) {
	res, err := ReadString(`
<robot>
<suite name="Root">
<test name="First">
<for flavor="IN RANGE">
<var>${i}</var>
<value>1</value>
<value>3</value>
<iter>
<var name="${i}">1</var>
<kw name="Log" owner="BuiltIn"><status status="PASS"/></kw>
<status status="PASS"/>
</iter>
<status status="PASS"/>
</for>
<while condition="${x} &lt; 10" limit="100">
<iter><status status="PASS"/></iter>
<status status="PASS"/>
</while>
<if>
<branch type="IF" condition="${x} == 1">
<kw name="Log" owner="BuiltIn"><status status="NOT RUN"/></kw>
<status status="NOT RUN"/>
</branch>
<branch type="ELSE">
<status status="PASS"/>
</branch>
<status status="PASS"/>
</if>
<try>
<branch type="TRY"><status status="FAIL"/></branch>
<branch type="EXCEPT" pattern_type="GLOB">
<pattern>ValueError*</pattern>
<status status="PASS"/>
</branch>
<branch type="FINALLY"><status status="PASS"/></branch>
<status status="PASS"/>
</try>
<group name="Cleanup steps">
<kw name="Close" owner="Remote"><status status="PASS"/></kw>
<status status="PASS"/>
</group>
<variable name="${greeting}" scope="local" separator="">
<var>Hello</var>
<var>world</var>
<status status="PASS"/>
</variable>
<return>
<value>${result}</value>
<status status="PASS"/>
</return>
<continue><status status="NOT RUN"/></continue>
<break><status status="NOT RUN"/></break>
<error>
<value>Unknown keyword</value>
<status status="FAIL"/>
</error>
<status status="PASS"/>
</test>
</suite>
</robot>`)
	require.NoError(t, err)

	body := res.Suite.Tests[0].Body
	require.Equal(t, 10, body.Len())

	forLoop := body.Items()[0].(*result.For)
	assert.Equal(t, "IN RANGE", forLoop.Flavor)
	assert.Equal(t, []string{"${i}"}, forLoop.Assign)
	assert.Equal(t, []string{"1", "3"}, forLoop.Values)
	require.Equal(t, 1, forLoop.Body.Len())
	iter := forLoop.Body.Items()[0].(*result.Iteration)
	value, ok := iter.AssignValue("${i}")
	assert.True(t, ok)
	assert.Equal(t, "1", value)
	assert.Equal(t, 1, iter.Body.Len())

	while := body.Items()[1].(*result.While)
	assert.Equal(t, "${x} < 10", while.Condition)
	assert.Equal(t, "100", while.Limit)
	assert.Equal(t, 1, while.Body.Len())

	ifBlock := body.Items()[2].(*result.If)
	require.Equal(t, 2, ifBlock.Body.Len())
	ifBranch := ifBlock.Body.Items()[0].(*result.Branch)
	assert.Equal(t, "IF", string(ifBranch.BranchType))
	assert.Equal(t, "${x} == 1", ifBranch.Condition)
	elseBranch := ifBlock.Body.Items()[1].(*result.Branch)
	assert.Equal(t, "ELSE", string(elseBranch.BranchType))

	tryBlock := body.Items()[3].(*result.Try)
	require.Equal(t, 3, tryBlock.Body.Len())
	except := tryBlock.Body.Items()[1].(*result.Branch)
	assert.Equal(t, "EXCEPT", string(except.BranchType))
	assert.Equal(t, []string{"ValueError*"}, except.Patterns)
	assert.Equal(t, "GLOB", except.PatternType)

	group := body.Items()[4].(*result.Group)
	assert.Equal(t, "Cleanup steps", group.Name)
	assert.Equal(t, 1, group.Body.Len())

	varItem := body.Items()[5].(*result.Var)
	assert.Equal(t, "${greeting}", varItem.Name)
	assert.Equal(t, "local", varItem.Scope)
	require.NotNil(t, varItem.Separator)
	assert.Equal(t, "", *varItem.Separator)
	assert.Equal(t, []string{"Hello", "world"}, varItem.Value)

	ret := body.Items()[6].(*result.Return)
	assert.Equal(t, []string{"${result}"}, ret.Values)

	assert.IsType(t, &result.Continue{}, body.Items()[7])
	assert.IsType(t, &result.Break{}, body.Items()[8])

	errItem := body.Items()[9].(*result.Error)
	assert.Equal(t, []string{"Unknown keyword"}, errItem.Values)
	assert.Equal(t, result.StatusFail, errItem.Status)
}

func TestReadBranchVariableAttribute(t *testing.T) {
	res, err := ReadString(`
<robot>
<suite name="Root">
<test name="First">
<if>
<branch type="IF" condition="True" variable="${x}">
<status status="PASS"/>
</branch>
<status status="PASS"/>
</if>
<status status="PASS"/>
</test>
</suite>
</robot>`)
	require.NoError(t, err)

	ifBlock := res.Suite.Tests[0].Body.Items()[0].(*result.If)
	branch := ifBlock.Body.Items()[0].(*result.Branch)
	assert.Equal(t, "${x}", branch.Assign)
}

func TestReadLegacyWrapperElements(t *testing.T) {
	res, err := ReadString(`
<robot generator="Robot 3.2.2 (Python 3.8.0 on linux)">
<suite name="Root">
<metadata>
<item name="Version">1.0</item>
</metadata>
<test name="First">
<kw name="Log" library="BuiltIn" sourcename="Original Log">
<tags>
<tag>keyword tag</tag>
</tags>
<arguments>
<arg>Hello</arg>
</arguments>
<assign>
<var>${x}</var>
</assign>
<status status="PASS"/>
</kw>
<tags>
<tag>smoke</tag>
</tags>
<status status="PASS"/>
</test>
</suite>
</robot>`)
	require.NoError(t, err)

	suite := res.Suite
	version, ok := suite.Metadata.Get("Version")
	assert.True(t, ok)
	assert.Equal(t, "1.0", version)

	test := suite.Tests[0]
	assert.Equal(t, []string{"smoke"}, test.Tags.List())

	kw := test.Body.Items()[0].(*result.Keyword)
	assert.Equal(t, "BuiltIn", kw.Owner)
	assert.Equal(t, "Original Log", kw.SourceName)
	assert.Equal(t, []string{"keyword tag"}, kw.Tags.List())
	assert.Equal(t, []string{"Hello"}, kw.Args)
	assert.Equal(t, []string{"${x}"}, kw.Assign)
}

func TestReadLegacyLoopKeywords(t *testing.T) {
	res, err := ReadString(`
<robot generator="Robot 3.2.2 (Python 3.8.0 on linux)">
<suite name="Root">
<test name="First">
<kw type="for" name="${i} IN RANGE [ 3 ]">
<kw type="foritem" name="${i} = 0">
<kw name="Log" library="BuiltIn"><status status="PASS"/></kw>
<status status="PASS"/>
</kw>
<status status="PASS"/>
</kw>
<status status="PASS"/>
</test>
</suite>
</robot>`)
	require.NoError(t, err)

	body := res.Suite.Tests[0].Body
	require.Equal(t, 1, body.Len())
	forLoop, ok := body.Items()[0].(*result.For)
	require.True(t, ok)
	require.Equal(t, 1, forLoop.Body.Len())
	iter, ok := forLoop.Body.Items()[0].(*result.Iteration)
	require.True(t, ok)
	assert.Equal(t, 1, iter.Body.Len())
}

func TestReadUnsupportedKeywordType(t *testing.T) {
	_, err := ReadString(`
<robot>
<suite name="Root">
<test name="First">
<kw type="bogus" name="X"><status/></kw>
<status/>
</test>
</suite>
</robot>`)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported keyword type 'bogus'")
}

func TestReadStatisticsIgnored(t *testing.T) {
	res, err := ReadString(`
<robot>
<suite name="Root">
<test name="First"><status status="PASS"/></test>
</suite>
<statistics>
<total>
<stat pass="1" fail="0" skip="0">All Tests</stat>
</total>
<tag/>
<suite>
<stat pass="1" fail="0" skip="0" name="Root">Root</stat>
</suite>
</statistics>
</robot>`)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Suite.TestCount())
	assert.Empty(t, res.Errors.Messages)
}

func TestReadStatisticsRejectsForeignChild(t *testing.T) {
	_, err := ReadString(`
<robot>
<suite name="Root"/>
<statistics>
<kw name="Should Not Be Here"/>
</statistics>
</robot>`)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "incompatible child element 'kw' for 'statistics'")
}

func TestReadIncompatibleChildElement(t *testing.T) {
	_, err := ReadString(`
<robot>
<suite name="Root">
<test name="First">
<kw name="Log"><test name="nested"/></kw>
</test>
</suite>
</robot>`)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "incompatible child element 'test' for 'kw'")
}

func TestReadErrorsSection(t *testing.T) {
	res, err := ReadString(`
<robot>
<suite name="Root"/>
<errors>
<msg time="2023-01-01T12:00:00.000000" level="ERROR">Importing library failed</msg>
<msg timestamp="20230101 12:00:01.000" level="WARN" html="yes">&lt;b&gt;old&lt;/b&gt;</msg>
</errors>
</robot>`)
	require.NoError(t, err)

	require.Len(t, res.Errors.Messages, 2)
	first := res.Errors.Messages[0]
	assert.Equal(t, "Importing library failed", first.Text)
	assert.Equal(t, result.LevelError, first.Level)
	require.NotNil(t, first.Timestamp)

	second := res.Errors.Messages[1]
	assert.Equal(t, "<b>old</b>", second.Text)
	assert.Equal(t, result.LevelWarn, second.Level)
	assert.True(t, second.HTML)
	require.NotNil(t, second.Timestamp)
	expected := time.Date(2023, 1, 1, 12, 0, 1, 0, time.UTC)
	assert.True(t, second.Timestamp.Equal(expected))
}

func TestReadIncompatibleRootElement(t *testing.T) {
	_, err := ReadString(`<wrong/>`)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "incompatible root element 'wrong'")
}

func TestReadInvalidXML(t *testing.T) {
	_, err := ReadString(`<robot><suite name="Root">`)

	assert.Error(t, err)
}

func TestReadStringDetectsJSON(t *testing.T) {
	res, err := ReadString(`  {"generator":"test","suite":{"name":"FromJSON"}}`)
	require.NoError(t, err)

	assert.Equal(t, "FromJSON", res.Suite.Name)
	assert.Equal(t, "test", res.Generator)
}

func TestReadFileXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.xml")
	content := `<robot><suite name="FromFile"><test name="First"><status status="PASS"/></test></suite></robot>`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	res, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FromFile", res.Suite.Name)
}

func TestReadFileJSONExtension(t *testing.T) {
	for _, ext := range []string{".json", ".rbt"} {
		path := filepath.Join(t.TempDir(), "output"+ext)
		content := `{"generator":"test","suite":{"name":"FromJSONFile"}}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		res, err := ReadFile(path)
		require.NoError(t, err, ext)
		assert.Equal(t, "FromJSONFile", res.Suite.Name)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.xml"))

	assert.Error(t, err)
}

func TestReadMessageHTMLFlag(t *testing.T) {
	res, err := ReadString(`
<robot>
<suite name="Root">
<test name="First">
<kw name="Log" owner="BuiltIn">
<msg time="2023-01-01T12:00:00.000000" level="INFO" html="true">&lt;img src="x.png"&gt;</msg>
<status status="PASS"/>
</kw>
<status status="PASS"/>
</test>
</suite>
</robot>`)
	require.NoError(t, err)

	kw := res.Suite.Tests[0].Body.Items()[0].(*result.Keyword)
	msg := kw.Body.Items()[0].(*result.Message)
	assert.True(t, msg.HTML)
	assert.Equal(t, `<img src="x.png">`, msg.Text)
}

func TestReadSuiteLevelStatusKeepsTimingOnly(t *testing.T) {
	res, err := ReadString(`
<robot>
<suite name="Root">
<status status="PASS" start="2023-01-01T12:00:00.000000" elapsed="0.5"/>
</suite>
</robot>`)
	require.NoError(t, err)

	suite := res.Suite
	require.NotNil(t, suite.StartTime)
	assert.Equal(t, 500*time.Millisecond, suite.ElapsedTime())
	// The stored suite status is derived from child results, not from the
	// serialized aggregate.
	assert.Equal(t, result.StatusNotSet, suite.Status)
}

func TestReadRPAMode(t *testing.T) {
	res, err := ReadString(`<robot rpa="true"><suite name="Tasks"/></robot>`)
	require.NoError(t, err)

	assert.True(t, res.RPA())
	assert.True(t, res.Suite.RPA)
}
