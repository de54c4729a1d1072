package analyzer

import (
	"fmt"
	"path/filepath"

	"github.com/seekr-dev/seekr/internal/report"
)

// Run suggestions are canned per project type. The requirement text the
// service consumes is Chinese, so the user-facing strings are too.
const (
	planNode    = "要执行此项目，应首先执行 `npm install` 安装依赖，然后执行 `npm run start` 来启动服务。"
	planPyDeps  = "要执行此项目，应首先执行 `pip install -r requirements.txt` 安装依赖，然后执行 `python main.py` 或相应的启动脚本。"
	planPyBare  = "要执行此项目，应执行 `python main.py` 或相应的启动脚本。"
	planJava    = "要执行此项目，应使用 Maven 或 Gradle 构建项目，然后运行生成的 JAR 文件。"
	planDotnet  = "要执行此项目，应首先执行 `dotnet restore` 还原依赖，然后执行 `dotnet run` 来启动服务。"
	planUnknown = "请根据项目类型，按照相应的构建和启动流程执行此项目。"
)

// simulatedLog is the fixed log returned by the verification stub.
const simulatedLog = "测试执行成功（模拟结果）。在实际实现中，这里将包含真实的测试执行日志。"

// SuggestExecutionPlan returns a canned run instruction keyed on the
// detected project type. The instruction is derived from the
// classification only, never from actual project contents.
func (a *Analyzer) SuggestExecutionPlan() string {
	switch a.DetectProjectType() {
	case NodeEcosystem:
		return planNode
	case PythonProject:
		if fileExists(filepath.Join(a.root, "requirements.txt")) {
			return planPyDeps
		}
		return planPyBare
	case JavaProject:
		return planJava
	case DotnetProject:
		return planDotnet
	default:
		return planUnknown
	}
}

const nodeTestStub = `// 为 Node.js 项目生成的测试代码示例
const assert = require('assert');

// 请根据实际项目结构和功能实现修改测试代码
describe('项目功能测试', () => {
  // 测试用例示例
  it('应该实现需求中描述的功能', () => {
    // TODO: 实现具体的测试逻辑
    assert.strictEqual(1, 1);
  });

  // 可以添加更多测试用例
  // it('另一个测试用例', () => {...});

});
`

const pythonTestStub = `# 为 Python 项目生成的测试代码示例
import unittest

# 请根据实际项目结构和功能实现修改测试代码
class TestProjectFeatures(unittest.TestCase):

    def test_feature_implementation(self):
        # TODO: 实现具体的测试逻辑
        self.assertEqual(1, 1)

    # 可以添加更多测试方法
    # def test_another_feature(self):
    #     ...

if __name__ == '__main__':
    unittest.main()
`

// GenerateTestCode returns a canned stub test source for the detected
// project type. The stub is a fixed template; it does not reference any
// real symbol of the analyzed project.
func (a *Analyzer) GenerateTestCode() string {
	switch projectType := a.DetectProjectType(); projectType {
	case NodeEcosystem:
		return nodeTestStub
	case PythonProject:
		return pythonTestStub
	default:
		return fmt.Sprintf("// 为 %s 项目生成的测试代码示例\n// 请根据实际项目结构和功能实现修改测试代码\n", projectType)
	}
}

// VerifyFunctionality is a non-functional placeholder. It never executes
// the generated test code; it always reports simulated success with a
// fixed log so callers cannot mistake it for a real test run. Replacing
// it with a real executor is an explicit future feature, not a bug fix.
func (a *Analyzer) VerifyFunctionality() report.ExecutionResult {
	return report.ExecutionResult{
		TestsPassed: true,
		Log:         simulatedLog,
	}
}
